package dispatcher

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/browserup/sorcery-desktop/internal/gitrepo"
	"github.com/browserup/sorcery-desktop/internal/parser"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test.com")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v: %s", args, err, out)
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "-b", "main")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial")
	return dir
}

// TestHandleGitRef_DirtyWithExistingWorktree_Reuses exercises the §4.5
// decision table row where a dirty main tree has an existing cached
// worktree for the requested ref: the request should resolve into the
// worktree rather than block with a dirty dialog.
func TestHandleGitRef_DirtyWithExistingWorktree_Reuses(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	runGit(t, dir, "branch", "feature")

	repo := gitrepo.New()
	ctx := context.Background()
	worktreeRoot := t.TempDir()

	wtPath, err := repo.WorktreeAdd(ctx, dir, "ws", "feature", worktreeRoot, 5)
	if err != nil {
		t.Fatalf("WorktreeAdd: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("dirty"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := &Dispatcher{repo: repo}
	outcome := d.handleGitRef(ctx, dir, filepath.Join(dir, "README.md"), parser.GitRef{Kind: parser.RefBranch, Value: "feature"}, false, worktreeRoot, "ws", 5)

	if outcome.Result != nil {
		t.Fatalf("expected resolution into existing worktree, got blocking result: %+v", outcome.Result)
	}
	if outcome.Path != filepath.Join(wtPath, "README.md") {
		t.Errorf("expected path rewritten into worktree %q, got %q", wtPath, outcome.Path)
	}
}

// TestHandleGitRef_DirtyWithoutExistingWorktree_Blocks confirms the dirty
// dialog still blocks when no worktree for ref has been created yet.
func TestHandleGitRef_DirtyWithoutExistingWorktree_Blocks(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	runGit(t, dir, "branch", "feature")

	repo := gitrepo.New()
	ctx := context.Background()
	worktreeRoot := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("dirty"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := &Dispatcher{repo: repo}
	outcome := d.handleGitRef(ctx, dir, filepath.Join(dir, "README.md"), parser.GitRef{Kind: parser.RefBranch, Value: "feature"}, false, worktreeRoot, "ws", 5)

	if outcome.Result == nil || outcome.Result.Revision == nil || outcome.Result.Revision.BlockReason != "dirty" {
		t.Fatalf("expected blocking dirty dialog, got %+v", outcome)
	}
}
