package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// WorktreeInfo describes one entry from `git worktree list --porcelain`.
type WorktreeInfo struct {
	Path   string
	Branch string
	Commit string
	Bare   bool
}

// ListWorktrees returns every worktree registered against repoPath,
// including the main one. Used by diagnostic tooling to audit what the
// LRU eviction policy in WorktreeAdd is managing.
func (r *Repo) ListWorktrees(ctx context.Context, repoPath string) ([]WorktreeInfo, error) {
	out, err := r.run(ctx, repoPath, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotARepo, repoPath, err)
	}
	return parseWorktreeList(out), nil
}

func parseWorktreeList(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	flush := func() {
		if current.Path != "" {
			worktrees = append(worktrees, current)
		}
		current = WorktreeInfo{}
	}

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			flush()
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		switch parts[0] {
		case "worktree":
			if len(parts) == 2 {
				current.Path = parts[1]
			}
		case "HEAD":
			if len(parts) == 2 {
				current.Commit = parts[1]
			}
		case "branch":
			if len(parts) == 2 {
				current.Branch = strings.TrimPrefix(parts[1], "refs/heads/")
			}
		case "bare":
			current.Bare = true
		}
	}
	flush()

	return worktrees
}

// SafeName sanitizes an arbitrary workspace display name or git ref into a
// string safe to use as a single path component under worktree_root.
func SafeName(name string) string {
	sanitized := unsafeNameChars.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, "._")
	if sanitized == "" {
		sanitized = "_"
	}
	return sanitized
}

// ExistingWorktree reports whether a worktree for ref is already cached
// under worktreeRoot for workspaceName, without creating one. Used to
// resolve a dirty main tree into an already-cached worktree instead of
// blocking the caller.
func (r *Repo) ExistingWorktree(worktreeRoot, workspaceName, ref string) (string, bool) {
	worktreePath := filepath.Join(worktreeRoot, SafeName(workspaceName), SafeName(ref))
	if info, err := os.Stat(worktreePath); err == nil && info.IsDir() {
		touch(worktreePath)
		return worktreePath, true
	}
	return "", false
}

// WorktreeAdd creates (or reuses) a worktree for ref under worktreeRoot,
// enforcing the registry's per-workspace LRU capacity. It first tries a
// branch-bound worktree, falling back to --detach on the resolved commit
// when the branch is already checked out elsewhere.
func (r *Repo) WorktreeAdd(ctx context.Context, repoPath, workspaceName, ref string, worktreeRoot string, maxPerRepo int) (string, error) {
	base := filepath.Join(worktreeRoot, SafeName(workspaceName))
	worktreePath := filepath.Join(base, SafeName(ref))

	if info, err := os.Stat(worktreePath); err == nil && info.IsDir() {
		touch(worktreePath)
		return worktreePath, nil
	}

	unlock := r.locks.lock(repoPath)
	defer unlock()

	if err := r.evictOldestIfFull(ctx, repoPath, base, maxPerRepo); err != nil {
		return "", err
	}

	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", apperr.Wrap(apperr.KindWorktreeFailed, "create worktree parent dir", err)
	}

	if _, err := r.run(ctx, repoPath, "worktree", "add", worktreePath, ref); err != nil {
		resolved, resolveErr := r.ResolveRef(ctx, repoPath, ref, false)
		if resolveErr != nil {
			return "", apperr.Wrap(apperr.KindWorktreeFailed, "resolve ref for detached worktree", resolveErr)
		}
		if _, derr := r.run(ctx, repoPath, "worktree", "add", "--detach", worktreePath, resolved.SHA); derr != nil {
			os.RemoveAll(worktreePath)
			r.pruneWorktrees(ctx, repoPath)
			return "", apperr.Wrap(apperr.KindWorktreeFailed, "create detached worktree", derr)
		}
	}

	return worktreePath, nil
}

// WorktreeRemove removes a worktree directory and prunes git's internal
// worktree list. Used both by explicit cleanup and LRU eviction.
func (r *Repo) WorktreeRemove(ctx context.Context, repoPath, worktreePath string) error {
	if _, err := r.run(ctx, repoPath, "worktree", "remove", "--force", worktreePath); err != nil {
		os.RemoveAll(worktreePath)
	}
	return r.pruneWorktrees(ctx, repoPath)
}

func (r *Repo) pruneWorktrees(ctx context.Context, repoPath string) error {
	_, err := r.run(ctx, repoPath, "worktree", "prune")
	return err
}

// evictOldestIfFull removes the oldest (by directory mtime) worktree under
// base when the workspace is already at maxPerRepo entries.
func (r *Repo) evictOldestIfFull(ctx context.Context, repoPath, base string, maxPerRepo int) error {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil // base doesn't exist yet, nothing to evict
	}

	type dirMtime struct {
		path  string
		mtime int64
	}
	var dirs []dirMtime
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		dirs = append(dirs, dirMtime{path: filepath.Join(base, e.Name()), mtime: info.ModTime().UnixNano()})
	}

	if len(dirs) < maxPerRepo {
		return nil
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].mtime < dirs[j].mtime })
	oldest := dirs[0].path
	return r.WorktreeRemove(ctx, repoPath, oldest)
}

// touch updates a worktree directory's mtime so the LRU reflects reuse, not
// just creation time.
func touch(path string) {
	now := time.Now()
	_ = os.Chtimes(path, now, now)
}

// GC prunes git's internal worktree bookkeeping for repoPath, then evicts
// worktrees under base (oldest first, by directory mtime) down to
// maxPerRepo entries. It returns the paths removed, for diagnostic
// reporting. Unlike evictOldestIfFull, which removes exactly one entry
// inline with WorktreeAdd, GC is an explicit maintenance operation and
// removes as many as needed to reach the cap in one pass.
func (r *Repo) GC(ctx context.Context, repoPath, base string, maxPerRepo int) ([]string, error) {
	if err := r.pruneWorktrees(ctx, repoPath); err != nil {
		return nil, apperr.Wrap(apperr.KindWorktreeFailed, "prune", err)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, nil
	}

	type dirMtime struct {
		path  string
		mtime int64
	}
	var dirs []dirMtime
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		dirs = append(dirs, dirMtime{path: filepath.Join(base, e.Name()), mtime: info.ModTime().UnixNano()})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].mtime < dirs[j].mtime })

	var removed []string
	for len(dirs) > maxPerRepo {
		victim := dirs[0]
		dirs = dirs[1:]
		if err := r.WorktreeRemove(ctx, repoPath, victim.path); err != nil {
			return removed, apperr.Wrap(apperr.KindWorktreeFailed, victim.path, err)
		}
		removed = append(removed, victim.path)
	}

	return removed, nil
}
