// Package settings is the strongly-typed, persisted configuration store:
// concurrent reads, serialized writes, atomic on-disk persistence.
package settings

import "strings"

// Workspace is one entry in the configured workspace list.
type Workspace struct {
	Path        string `yaml:"path" json:"path" jsonschema:"required,description=Absolute path to the workspace root"`
	DisplayName string `yaml:"display_name,omitempty" json:"display_name,omitempty" jsonschema:"description=Short identifier used as the srcuri:// authority; must not contain a dot"`
	EditorID    string `yaml:"editor_id,omitempty" json:"editor_id,omitempty" jsonschema:"description=Per-workspace editor override"`
}

// Settings is the full persisted configuration.
type Settings struct {
	DefaultEditorID          string      `yaml:"default_editor_id,omitempty" json:"default_editor_id,omitempty"`
	PreferredTerminal        string      `yaml:"preferred_terminal,omitempty" json:"preferred_terminal,omitempty" jsonschema:"default=auto"`
	AllowNonWorkspaceFiles   bool        `yaml:"allow_non_workspace_files" json:"allow_non_workspace_files"`
	RepoBaseDir              string      `yaml:"repo_base_dir,omitempty" json:"repo_base_dir,omitempty"`
	AutoSwitchCleanBranches  bool        `yaml:"auto_switch_clean_branches" json:"auto_switch_clean_branches"`
	WorktreeRoot             string      `yaml:"worktree_root,omitempty" json:"worktree_root,omitempty"`
	MaxWorktreesPerRepo      int         `yaml:"max_worktrees_per_repo" json:"max_worktrees_per_repo" jsonschema:"default=3"`
	Workspaces               []Workspace `yaml:"workspaces,omitempty" json:"workspaces,omitempty"`
}

// Default returns the settings document with every default from §3 applied.
func Default(configDir, repoBaseDir, worktreeRoot string) Settings {
	return Settings{
		PreferredTerminal:       "auto",
		AllowNonWorkspaceFiles:  false,
		RepoBaseDir:             repoBaseDir,
		AutoSwitchCleanBranches: true,
		WorktreeRoot:            worktreeRoot,
		MaxWorktreesPerRepo:     3,
	}
}

// WorkspaceByName looks up a workspace by display_name, case-insensitively.
// Per the data model invariant, a dotted display_name is rejected here: it
// is reachable only via an explicit workspace_override (WorkspaceByOverride).
func (s Settings) WorkspaceByName(name string) (Workspace, bool) {
	for _, ws := range s.Workspaces {
		if ws.DisplayName == "" || strings.Contains(ws.DisplayName, ".") {
			continue
		}
		if strings.EqualFold(ws.DisplayName, name) {
			return ws, true
		}
	}
	return Workspace{}, false
}

// WorkspaceByOverride looks up a workspace by display_name regardless of
// whether it contains a dot, for the workspace_override query parameter.
func (s Settings) WorkspaceByOverride(name string) (Workspace, bool) {
	for _, ws := range s.Workspaces {
		if ws.DisplayName == "" {
			continue
		}
		if strings.EqualFold(ws.DisplayName, name) {
			return ws, true
		}
	}
	return Workspace{}, false
}
