package editors

import "testing"

func TestNewDefaultRegistry_ContainsCoreEditors(t *testing.T) {
	r := NewDefaultRegistry()

	for _, id := range []string{"vscode", "cursor", "vscodium", "windsurf", "idea", "goland", "neovim", "vim", "emacs", "zed", "sublime", "xcode"} {
		if _, ok := r.Get(id); !ok {
			t.Errorf("expected registry to contain %q", id)
		}
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("vscode"); ok {
		t.Fatal("expected empty registry to have no entries")
	}

	r.Register(newVSCodeManager(vscodeConfig{id: "vscode", displayName: "Visual Studio Code", cliName: "code"}))
	m, ok := r.Get("vscode")
	if !ok {
		t.Fatal("expected vscode to be registered")
	}
	if m.DisplayName() != "Visual Studio Code" {
		t.Errorf("unexpected display name: %s", m.DisplayName())
	}
}

func TestApplyPreferredTerminal(t *testing.T) {
	r := NewDefaultRegistry()
	r.ApplyPreferredTerminal("kitty")

	m, ok := r.Get("vim")
	if !ok {
		t.Fatal("expected vim to be registered")
	}
	vm, ok := m.(*terminalEditorManager)
	if !ok {
		t.Fatal("expected *terminalEditorManager")
	}
	if got := vm.preferredTerminal(); got != "kitty" {
		t.Errorf("expected preferred terminal kitty, got %s", got)
	}
}
