// Package gitrepo wraps the git binary for the subset of operations the
// dispatcher needs: status inspection, ref resolution, worktree lifecycle,
// and clone-on-demand. Every invocation goes through command.SafeBuilder so
// arguments are validated before they reach exec.Command.
package gitrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/browserup/sorcery-desktop/command"
	"github.com/browserup/sorcery-desktop/internal/apperr"
)

// DefaultTimeout bounds any single git invocation made through run. An
// invocation that exceeds it is killed and its error is returned like any
// other git failure; each caller wraps it in its own apperr kind, and a
// timeout is not reported as a distinct kind.
const DefaultTimeout = 30 * time.Second

// Repo wraps git operations scoped to one repository checkout.
type Repo struct {
	builder *command.SafeBuilder
	locks   *repoLocks
}

// New creates a Repo backed by a real SafeBuilder.
func New() *Repo {
	return &Repo{
		builder: command.NewSafeBuilder(),
		locks:   newRepoLocks(),
	}
}

// Status is the result of `status(repo)`.
type Status struct {
	CurrentBranch string
	Dirty         bool
	ModifiedPaths []string
}

// run executes `git <args...>` in dir with a bounded timeout and returns
// trimmed stdout. On failure the error wraps git's stderr text so callers
// can pattern-match on messages like "ambiguous argument".
func (r *Repo) run(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	cmd, err := r.builder.Build(ctx, "git", args...)
	if err != nil {
		return "", err
	}
	execCmd := cmd.Exec()
	execCmd.Dir = dir

	var stderr strings.Builder
	execCmd.Stderr = &stderr

	out, err := execCmd.Output()
	if err != nil && stderr.Len() > 0 {
		err = fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), err
}

// Status reports the current branch and dirty state of a repository.
// dirty is true iff status reports any modified, added, deleted, renamed,
// or typechange entry on either side of the index.
func (r *Repo) Status(ctx context.Context, repoPath string) (*Status, error) {
	if !r.isRepo(ctx, repoPath) {
		return nil, apperr.New(apperr.KindNotARepo, repoPath)
	}

	out, err := r.run(ctx, repoPath, "status", "--porcelain=v2", "--branch")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotARepo, repoPath, err)
	}

	status := &Status{}
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "# branch.head ") {
			status.CurrentBranch = strings.TrimPrefix(line, "# branch.head ")
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "?":
			// Untracked entries are listed but do not make the tree dirty.
			status.ModifiedPaths = append(status.ModifiedPaths, fields[len(fields)-1])
		case "1", "2", "u", "U":
			status.Dirty = true
			status.ModifiedPaths = append(status.ModifiedPaths, fields[len(fields)-1])
		}
	}
	return status, nil
}

func (r *Repo) isRepo(ctx context.Context, path string) bool {
	_, err := r.run(ctx, path, "rev-parse", "--git-dir")
	return err == nil
}

// ResolvedRef is the outcome of resolving a git_ref to a concrete commit.
type ResolvedRef struct {
	SHA string
}

// An unresolvable or ambiguous ref is reported as an apperr error of kind
// RefNotFound or RefAmbiguous, not as a distinct result variant, so callers
// can use apperr.Is uniformly with the rest of the dispatcher's error handling.

// ResolveRef resolves a branch/tag/commit name to a commit SHA. Short SHAs
// are accepted if they resolve unambiguously; branches are matched locally
// first, then against origin if fetchOrigin is set.
func (r *Repo) ResolveRef(ctx context.Context, repoPath, ref string, fetchOrigin bool) (*ResolvedRef, error) {
	if err := r.builder.Validate("gitRef", ref); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformed, "invalid ref", err)
	}

	sha, verifyErr := r.run(ctx, repoPath, "rev-parse", "--verify", ref+"^{commit}")
	if verifyErr == nil && sha != "" {
		return &ResolvedRef{SHA: sha}, nil
	}
	if isAmbiguous(verifyErr) {
		return nil, apperr.New(apperr.KindRefAmbiguous, ref)
	}

	if fetchOrigin {
		if _, ferr := r.run(ctx, repoPath, "fetch", "origin", ref); ferr == nil {
			sha, err := r.run(ctx, repoPath, "rev-parse", "--verify", "FETCH_HEAD^{commit}")
			if err == nil && sha != "" {
				return &ResolvedRef{SHA: sha}, nil
			}
		}
	}

	return nil, apperr.New(apperr.KindRefNotFound, ref)
}

func isAmbiguous(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "ambiguous")
}

// ExtractToTemp writes the blob at ref:path to a read-only temp file whose
// name preserves path's extension, and returns the temp file's path.
func (r *Repo) ExtractToTemp(ctx context.Context, repoPath, ref, path string) (string, error) {
	content, err := r.run(ctx, repoPath, "show", ref+":"+path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindNotFound, ref+":"+path, err)
	}

	ext := extOf(path)
	f, err := os.CreateTemp("", "sorcery-desktop-*"+ext)
	if err != nil {
		return "", apperr.Wrap(apperr.KindWorktreeFailed, "create temp file", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return "", apperr.Wrap(apperr.KindWorktreeFailed, "write temp file", err)
	}
	if err := f.Chmod(0o444); err != nil {
		return "", apperr.Wrap(apperr.KindWorktreeFailed, "chmod temp file", err)
	}
	return f.Name(), nil
}

func extOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	slash := strings.LastIndexByte(path, '/')
	if idx == -1 || idx < slash {
		return ""
	}
	return path[idx:]
}

// Checkout switches repoPath's working tree to ref. It fails unless the
// tree is clean and no rebase/merge is in progress.
func (r *Repo) Checkout(ctx context.Context, repoPath, ref string) error {
	status, err := r.Status(ctx, repoPath)
	if err != nil {
		return err
	}
	if status.Dirty {
		return apperr.New(apperr.KindDirtyWorkingTree, repoPath)
	}
	if r.rebaseOrMergeInProgress(repoPath) {
		return apperr.New(apperr.KindDirtyWorkingTree, "rebase or merge in progress")
	}

	unlock := r.locks.lock(repoPath)
	defer unlock()

	if _, err := r.run(ctx, repoPath, "checkout", ref); err != nil {
		return apperr.Wrap(apperr.KindRefNotFound, ref, err)
	}
	return nil
}

func (r *Repo) rebaseOrMergeInProgress(repoPath string) bool {
	gitDir, err := r.run(context.Background(), repoPath, "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(repoPath, gitDir)
	}
	for _, marker := range []string{"rebase-merge", "rebase-apply", "MERGE_HEAD"} {
		if _, statErr := os.Stat(gitDir + "/" + marker); statErr == nil {
			return true
		}
	}
	return false
}

// Clone clones remote into destination, optionally at ref.
func (r *Repo) Clone(ctx context.Context, remote, destination, ref string) error {
	if err := r.builder.Validate("remoteURL", remote); err != nil {
		return apperr.Wrap(apperr.KindMalformed, "invalid remote", err)
	}

	args := []string{"clone"}
	if ref != "" {
		if verr := r.builder.Validate("gitRef", ref); verr != nil {
			return apperr.Wrap(apperr.KindMalformed, "invalid ref", verr)
		}
		args = append(args, "--branch", ref)
	}
	args = append(args, remote, destination)

	// Cloning does not use run's DefaultTimeout; the SafeBuilder still applies
	// its default command timeout (command.DefaultTimeout, two minutes).
	cmd, err := r.builder.Build(ctx, "git", args...)
	if err != nil {
		return err
	}
	if out, err := cmd.Exec().CombinedOutput(); err != nil {
		return apperr.Wrap(apperr.KindWorktreeFailed, string(out), err)
	}
	return nil
}

// ReflogLastTime returns the committer time of HEAD's most recent reflog
// entry, for the MRU tracker's Git-HEAD-reflog signal.
func (r *Repo) ReflogLastTime(ctx context.Context, repoPath string) (time.Time, bool) {
	out, err := r.run(ctx, repoPath, "log", "-g", "--max-count=1", "--format=%gd %ct", "HEAD")
	if err != nil || out == "" {
		return time.Time{}, false
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	unix, err := strconv.ParseInt(fields[len(fields)-1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

// repoLocks serializes mutating operations (checkout, worktree add, clone)
// per repository path; read-only queries need not serialize.
type repoLocks struct {
	mu    sync.Mutex
	perID map[string]*sync.Mutex
}

func newRepoLocks() *repoLocks {
	return &repoLocks{perID: make(map[string]*sync.Mutex)}
}

func (l *repoLocks) lock(repoPath string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.perID[repoPath]
	if !ok {
		m = &sync.Mutex{}
		l.perID[repoPath] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
