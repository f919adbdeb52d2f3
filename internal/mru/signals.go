package mru

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/browserup/sorcery-desktop/internal/gitrepo"
	"github.com/browserup/sorcery-desktop/internal/procscan"
)

// allowlistedSubdirs bounds the FS-fallback signal's search to directories
// likely to contain source, avoiding a full recursive walk of the workspace.
var allowlistedSubdirs = []string{"src", "app", "lib", "packages", "test", "spec", "include", "bin", "scripts"}

const fsFallbackEntryCap = 400

// processSignal reports now() if any process snapshot entry has a cwd
// canonically inside workspaceRoot.
func processSignal(procs []procscan.Process, workspaceRoot string) (time.Time, bool) {
	if procscan.AnyInDirectory(procs, workspaceRoot) {
		return time.Now(), true
	}
	return time.Time{}, false
}

// reflogSignal reports the committer time of HEAD's most recent reflog
// entry. Any git error (non-repo, no reflog yet) is treated as absent.
func reflogSignal(repo *gitrepo.Repo, workspaceRoot string) (time.Time, bool) {
	return repo.ReflogLastTime(context.Background(), workspaceRoot)
}

// statusMtimeSignal reports the max mtime across every path git status
// reports (tracked and untracked, no recursion into untracked directories).
func statusMtimeSignal(repo *gitrepo.Repo, workspaceRoot string) (time.Time, bool) {
	status, err := repo.Status(context.Background(), workspaceRoot)
	if err != nil {
		return time.Time{}, false
	}

	var latest time.Time
	found := false
	for _, rel := range status.ModifiedPaths {
		info, err := os.Stat(filepath.Join(workspaceRoot, rel))
		if err != nil {
			continue
		}
		if mt := info.ModTime(); !found || mt.After(latest) {
			latest = mt
			found = true
		}
	}
	return latest, found
}

// fsFallbackSignal reports the max mtime of the workspace root, up to nine
// allow-listed top-level subdirectories, and their immediate children,
// bounded by a hard cap on entries examined.
func fsFallbackSignal(workspaceRoot string) (time.Time, bool) {
	var latest time.Time
	found := false
	examined := 0

	consider := func(path string) {
		if examined >= fsFallbackEntryCap {
			return
		}
		examined++
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if mt := info.ModTime(); !found || mt.After(latest) {
			latest = mt
			found = true
		}
	}

	consider(workspaceRoot)

	for _, name := range allowlistedSubdirs {
		if examined >= fsFallbackEntryCap {
			break
		}
		if ignored(workspaceRoot, name) {
			continue
		}
		subdir := filepath.Join(workspaceRoot, name)
		consider(subdir)

		children, err := os.ReadDir(subdir)
		if err != nil {
			continue
		}
		for _, child := range children {
			if examined >= fsFallbackEntryCap {
				break
			}
			rel := filepath.Join(name, child.Name())
			if ignored(workspaceRoot, rel) {
				continue
			}
			consider(filepath.Join(subdir, child.Name()))
		}
	}

	return latest, found
}
