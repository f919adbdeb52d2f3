package dispatcher

import (
	"context"

	"github.com/browserup/sorcery-desktop/internal/editors"
	"github.com/browserup/sorcery-desktop/internal/settings"
)

// fallbackPriority is the fixed installed-editor search order used when
// neither a workspace override nor a global default resolves to an
// installed editor. Step 3 of the spec's selection chain (most-recently-
// seen foreground editor) is explicitly out of scope: it depends on a
// foreground-app tracker this repo does not implement.
var fallbackPriority = []string{
	"vscode", "cursor", "vscodium", "windsurf",
	"idea", "goland", "webstorm", "pycharm", "phpstorm", "rubymine", "clion", "rider", "datagrip", "androidstudio", "fleet",
	"zed", "sublime",
	"neovim", "vim", "emacs", "micro", "kakoune", "nano", "kate",
	"xcode",
}

// selectEditor implements the §4.7 precedence chain: workspace override,
// then global default, then the first installed editor from the fixed
// priority list.
func selectEditor(ctx context.Context, registry *editors.Registry, cfg settings.Settings, workspaceEditorID string) (editors.Manager, bool) {
	if workspaceEditorID != "" {
		if m, ok := registry.Get(workspaceEditorID); ok && m.IsInstalled(ctx) {
			return m, true
		}
	}

	if cfg.DefaultEditorID != "" {
		if m, ok := registry.Get(cfg.DefaultEditorID); ok && m.IsInstalled(ctx) {
			return m, true
		}
	}

	for _, id := range fallbackPriority {
		if m, ok := registry.Get(id); ok && m.IsInstalled(ctx) {
			return m, true
		}
	}

	return nil, false
}
