package gitrepo

import (
	"context"
	"path/filepath"
	"testing"
)

func TestListWorktrees_MainOnly(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	r := New()

	worktrees, err := r.ListWorktrees(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(worktrees) != 1 {
		t.Fatalf("expected 1 worktree, got %d", len(worktrees))
	}
	if worktrees[0].Branch != "main" {
		t.Errorf("expected branch main, got %q", worktrees[0].Branch)
	}
}

func TestWorktreeAddAndList(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	r := New()
	ctx := context.Background()

	run := func(args ...string) {
		cmdRun(t, dir, args...)
	}
	run("branch", "feature")

	root := t.TempDir()
	path, err := r.WorktreeAdd(ctx, dir, "ws", "feature", root, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	worktrees, err := r.ListWorktrees(ctx, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(worktrees) != 2 {
		t.Fatalf("expected 2 worktrees, got %d", len(worktrees))
	}

	found := false
	for _, wt := range worktrees {
		if wt.Path == path {
			found = true
		}
	}
	if !found {
		t.Errorf("expected worktree list to contain %q", path)
	}
}

func TestGC_EvictsBeyondCap(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	r := New()
	ctx := context.Background()

	cmdRun(t, dir, "branch", "a")
	cmdRun(t, dir, "branch", "b")
	cmdRun(t, dir, "branch", "c")

	root := t.TempDir()
	base := filepath.Join(root, SafeName("ws"))
	for _, branch := range []string{"a", "b", "c"} {
		if _, err := r.WorktreeAdd(ctx, dir, "ws", branch, root, 10); err != nil {
			t.Fatalf("WorktreeAdd(%s): %v", branch, err)
		}
	}

	removed, err := r.GC(ctx, dir, base, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed, got %d: %v", len(removed), removed)
	}

	worktrees, err := r.ListWorktrees(ctx, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(worktrees) != 2 { // main + one survivor
		t.Fatalf("expected 2 worktrees remaining, got %d", len(worktrees))
	}
}

func cmdRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := runGit(dir, args...); err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
}

func runGit(dir string, args ...string) error {
	r := New()
	_, err := r.run(context.Background(), dir, args...)
	return err
}
