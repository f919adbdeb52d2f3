package gitrepo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test.com")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v: %s", args, err, out)
		}
	}
	run("init", "-b", "main")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", ".")
	run("commit", "-m", "initial")
	return dir
}

func TestStatus_Clean(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	r := New()

	status, err := r.Status(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Dirty {
		t.Errorf("expected clean status, got dirty with %v", status.ModifiedPaths)
	}
	if status.CurrentBranch != "main" {
		t.Errorf("expected branch main, got %q", status.CurrentBranch)
	}
}

func TestStatus_Dirty(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	r := New()

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	status, err := r.Status(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Dirty {
		t.Error("expected dirty status")
	}
}

func TestStatus_NotARepo(t *testing.T) {
	r := New()
	dir := t.TempDir()
	_, err := r.Status(context.Background(), dir)
	if err == nil {
		t.Fatal("expected error for non-repo directory")
	}
}

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"feature/add-button": "feature_add-button",
		"my.project":         "my.project",
		"../../etc":          "etc",
		"":                   "_",
	}
	for in, want := range cases {
		if got := SafeName(in); got != want {
			t.Errorf("SafeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWorktreeAdd_CreateAndReuse(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	r := New()
	root := t.TempDir()

	path1, err := r.WorktreeAdd(context.Background(), dir, "proj", "main", root, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path1); err != nil {
		t.Fatalf("worktree dir not created: %v", err)
	}

	path2, err := r.WorktreeAdd(context.Background(), dir, "proj", "main", root, 3)
	if err != nil {
		t.Fatalf("unexpected error on reuse: %v", err)
	}
	if path1 != path2 {
		t.Errorf("expected reuse of same path, got %q and %q", path1, path2)
	}
}
