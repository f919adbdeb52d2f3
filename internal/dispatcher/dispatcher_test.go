package dispatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/browserup/sorcery-desktop/internal/editors"
	"github.com/browserup/sorcery-desktop/internal/gitrepo"
	"github.com/browserup/sorcery-desktop/internal/mru"
	"github.com/browserup/sorcery-desktop/internal/resolver"
	"github.com/browserup/sorcery-desktop/internal/settings"
)

// fakeEditor is a stub Manager recording its launches for assertions.
type fakeEditor struct {
	id      string
	opened  []string
	failNext bool
}

func (f *fakeEditor) ID() string          { return f.id }
func (f *fakeEditor) DisplayName() string { return f.id }
func (f *fakeEditor) IsInstalled(ctx context.Context) bool { return true }
func (f *fakeEditor) FindBinary(ctx context.Context) (string, bool) { return "/usr/bin/" + f.id, true }
func (f *fakeEditor) Open(ctx context.Context, path string, opts editors.OpenOptions) error {
	if f.failNext {
		return os.ErrInvalid
	}
	f.opened = append(f.opened, path)
	return nil
}
func (f *fakeEditor) RunningInstances(ctx context.Context) ([]editors.Instance, error) { return nil, nil }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestDispatcher(t *testing.T, cfg settings.Settings, fake *fakeEditor) *Dispatcher {
	t.Helper()
	settingsStore := settings.NewStore(filepath.Join(t.TempDir(), "settings.yaml"), cfg, nil)
	mruStore := mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml"))
	res := resolver.New(settingsStore, mruStore)
	registry := editors.NewRegistry()
	registry.Register(fake)
	return New(settingsStore, res, registry, gitrepo.New(), mruStore, nil)
}

func TestDispatch_WorkspacePathOpensEditor(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b.rs"), "fn main() {}")

	cfg := settings.Settings{
		Workspaces:             []settings.Workspace{{Path: root, DisplayName: "proj", EditorID: "fake"}},
		AllowNonWorkspaceFiles: true,
	}
	fake := &fakeEditor{id: "fake"}
	d := newTestDispatcher(t, cfg, fake)

	result := d.Dispatch(context.Background(), "srcuri://proj/a/b.rs:1")
	if result.Kind != KindOpened {
		t.Fatalf("expected Opened, got %+v", result)
	}
	if len(fake.opened) != 1 {
		t.Fatalf("expected one launch, got %d", len(fake.opened))
	}
}

func TestDispatch_UnknownWorkspaceTriggersCloneDialog(t *testing.T) {
	cfg := settings.Settings{AllowNonWorkspaceFiles: true}
	fake := &fakeEditor{id: "fake"}
	d := newTestDispatcher(t, cfg, fake)

	result := d.Dispatch(context.Background(), "srcuri://missing-workspace/a/b.rs:1?remote=github.com/org/repo")
	if result.Kind != KindShowCloneDialog {
		t.Fatalf("expected ShowCloneDialog, got %+v", result)
	}
}

func TestDispatch_LaunchFailureSurfacesError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b.rs"), "fn main() {}")

	cfg := settings.Settings{
		Workspaces:             []settings.Workspace{{Path: root, DisplayName: "proj", EditorID: "fake"}},
		AllowNonWorkspaceFiles: true,
	}
	fake := &fakeEditor{id: "fake", failNext: true}
	d := newTestDispatcher(t, cfg, fake)

	result := d.Dispatch(context.Background(), "srcuri://proj/a/b.rs:1")
	if result.Kind != KindError {
		t.Fatalf("expected Error, got %+v", result)
	}
	if len(d.LaunchLog().Recent()) != 1 {
		t.Fatalf("expected launch attempt recorded even on failure")
	}
}
