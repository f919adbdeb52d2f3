package settings

import (
	"os"
	"path/filepath"
)

// Discover walks baseDir looking for git repositories to offer as workspace
// candidates, stopping descent as soon as a repository is found (nested
// repositories inside a discovered one, e.g. submodules, are not surfaced
// separately — the user adds those explicitly if desired).
func Discover(baseDir string) ([]Workspace, error) {
	var found []Workspace

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(baseDir, e.Name())
		if isGitRepo(path) {
			found = append(found, Workspace{Path: path, DisplayName: e.Name()})
			continue
		}
		nested, err := Discover(path)
		if err == nil {
			found = append(found, nested...)
		}
	}

	return found, nil
}

func isGitRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && (info.IsDir() || info.Mode().IsRegular())
}

// MergeDiscovered appends any discovered workspace not already present
// (by path) to the configured list, without overwriting existing entries'
// display names or editor overrides.
func MergeDiscovered(configured []Workspace, discovered []Workspace) []Workspace {
	seen := make(map[string]bool, len(configured))
	for _, ws := range configured {
		seen[ws.Path] = true
	}
	merged := append([]Workspace(nil), configured...)
	for _, ws := range discovered {
		if !seen[ws.Path] {
			merged = append(merged, ws)
			seen[ws.Path] = true
		}
	}
	return merged
}
