// Package pathvalidator canonicalizes candidate paths and enforces the
// workspace boundary policy before the dispatcher is allowed to act on them.
package pathvalidator

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

// Workspace is the subset of workspace data the validator needs: a name and
// its canonical root directory.
type Workspace struct {
	Name          string
	CanonicalRoot string
}

// Result is the outcome of validating a candidate path.
type Result struct {
	Resolved  string
	Workspace string // name of the containing workspace, "" if none
	Outside   bool   // true when resolved lies outside every workspace
}

// Canonicalize resolves path to its absolute, symlink-free form. On macOS it
// strips a leading /private/ introduced by realpath so the result matches
// the path the user actually sees in Finder and most editors.
func Canonicalize(path string) (string, error) {
	expanded := expandHome(path)
	if !filepath.IsAbs(expanded) {
		return "", apperr.New(apperr.KindMalformed, "path must be absolute: "+path)
	}
	resolved, err := filepath.EvalSymlinks(expanded)
	if err != nil {
		return "", apperr.Wrap(apperr.KindNotFound, "failed to resolve path: "+path, err)
	}
	if containsDotDot(resolved) {
		return "", apperr.New(apperr.KindMalformed, "resolved path still contains .. segments: "+resolved)
	}
	if runtime.GOOS == "darwin" && strings.HasPrefix(resolved, "/private/") {
		resolved = strings.TrimPrefix(resolved, "/private")
	}
	return resolved, nil
}

func containsDotDot(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Validate canonicalizes path and classifies it against the configured
// workspaces. When allowNonWorkspaceFiles is false, a path outside every
// workspace is an OutsideWorkspace error rather than a successful Result
// with Outside=true.
func Validate(path string, workspaces []Workspace, allowNonWorkspaceFiles bool) (*Result, error) {
	resolved, err := Canonicalize(path)
	if err != nil {
		return nil, err
	}
	if ws, ok := InsideWorkspace(resolved, workspaces); ok {
		return &Result{Resolved: resolved, Workspace: ws.Name}, nil
	}
	if !allowNonWorkspaceFiles {
		return nil, apperr.New(apperr.KindOutsideWorkspace, resolved).WithField("resolved", resolved)
	}
	return &Result{Resolved: resolved, Outside: true}, nil
}

// InsideWorkspace reports whether resolved has any workspace's canonical
// root as a strict directory prefix, and if so, which one.
func InsideWorkspace(resolved string, workspaces []Workspace) (Workspace, bool) {
	for _, ws := range workspaces {
		if IsStrictlyUnder(resolved, ws.CanonicalRoot) {
			return ws, true
		}
	}
	return Workspace{}, false
}

// IsStrictlyUnder reports whether child lies strictly inside parent: parent
// itself does not count, and parent must be a full path-segment prefix
// (".../projectile" is not under ".../project").
func IsStrictlyUnder(child, parent string) bool {
	if child == parent {
		return false
	}
	cleanParent := filepath.Clean(parent)
	if !strings.HasSuffix(cleanParent, string(filepath.Separator)) {
		cleanParent += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(child)+string(filepath.Separator), cleanParent)
}
