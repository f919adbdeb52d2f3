// Package paths provides XDG-compliant path resolution for sorcery-desktop.
//
// Resolution order:
// 1. SORCERY_HOME (portable root) → $SORCERY_HOME/{config,data,state,cache}/sorcery-desktop
// 2. XDG env vars → $XDG_*_HOME/sorcery-desktop
// 3. Platform defaults → ~/.config/sorcery-desktop, ~/.local/share/sorcery-desktop, etc.
package paths

import (
	"os"
	"path/filepath"
)

func getConfigHome() string {
	if home := os.Getenv("SORCERY_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

func getDataHome() string {
	if home := os.Getenv("SORCERY_HOME"); home != "" {
		return filepath.Join(home, "data")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

func getStateHome() string {
	if home := os.Getenv("SORCERY_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return xdg
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

func getCacheHome() string {
	if home := os.Getenv("SORCERY_HOME"); home != "" {
		return filepath.Join(home, "cache")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".cache")
	}
	return ""
}

// ConfigDir returns the directory holding settings.yaml, workspace_mru.yaml,
// last_seen.yaml and the worktree registry root, per spec §6.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sorcery-desktop")
}

// DataDir returns the sorcery-desktop data directory (editor binary cache
// hints, discovered-workspace cache).
func DataDir() string {
	base := getDataHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sorcery-desktop")
}

// StateDir returns the directory used for logs and other runtime state.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sorcery-desktop")
}

// CacheDir returns the directory for regenerable data.
func CacheDir() string {
	base := getCacheHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "sorcery-desktop")
}

// RuntimeDir returns the directory used for the single-instance forwarder's
// local websocket endpoint metadata.
func RuntimeDir() string {
	if home := os.Getenv("SORCERY_HOME"); home != "" {
		return filepath.Join(home, "run")
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "sorcery-desktop")
	}
	return StateDir()
}

// SettingsPath returns the path to the persisted settings file.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "settings.yaml")
}

// SettingsSchemaPath returns the path to the generated JSON Schema sidecar
// for settings.yaml, used by editors for inline validation.
func SettingsSchemaPath() string {
	return filepath.Join(ConfigDir(), "settings.schema.json")
}

// MRUPath returns the path to the persisted MRU activity cache.
func MRUPath() string {
	return filepath.Join(ConfigDir(), "workspace_mru.yaml")
}

// LastSeenPath returns the path to the persisted editor last-seen cache.
func LastSeenPath() string {
	return filepath.Join(ConfigDir(), "last_seen.yaml")
}

// WorktreeRoot returns the default root under which worktrees are created,
// overridable by Settings.WorktreeRoot.
func WorktreeRoot() string {
	return filepath.Join(ConfigDir(), "worktrees")
}

// ForwarderSocketPath returns the path advertised by the single-instance
// forwarder (a local TCP port file, since the IPC transport is websocket
// rather than a raw unix socket).
func ForwarderSocketPath() string {
	return filepath.Join(RuntimeDir(), "forwarder.port")
}

// LogDir returns the directory logrus file sinks write into.
func LogDir() string {
	return filepath.Join(StateDir(), "logs")
}

// EnsureDirs creates all sorcery-desktop directories if they don't exist.
func EnsureDirs() error {
	dirs := []string{
		ConfigDir(),
		DataDir(),
		StateDir(),
		CacheDir(),
		RuntimeDir(),
		LogDir(),
		WorktreeRoot(),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
