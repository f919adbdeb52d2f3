package resolver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/browserup/sorcery-desktop/internal/mru"
	"github.com/browserup/sorcery-desktop/internal/parser"
	"github.com/browserup/sorcery-desktop/internal/settings"
)

func newTestStore(t *testing.T, cfg settings.Settings) *settings.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := settings.NewStore(path, cfg, nil)
	return store
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveWorkspacePath_Found(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b.rs"), "fn main() {}")

	cfg := settings.Settings{Workspaces: []settings.Workspace{{Path: root, DisplayName: "proj"}}}
	store := newTestStore(t, cfg)
	r := New(store, mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml")))

	req := &parser.Request{Kind: parser.KindWorkspacePath, Workspace: "proj", Path: "a/b.rs"}
	res, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindResolved {
		t.Fatalf("expected Resolved, got %v (%s)", res.Kind, res.Reason)
	}
}

func TestResolveWorkspacePath_UnknownWorkspace(t *testing.T) {
	cfg := settings.Settings{}
	store := newTestStore(t, cfg)
	r := New(store, mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml")))

	req := &parser.Request{Kind: parser.KindWorkspacePath, Workspace: "nope", Path: "a.rs"}
	res, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindUnknownWorkspace {
		t.Fatalf("expected UnknownWorkspace, got %v", res.Kind)
	}
}

func TestResolvePartialPath_SingleMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.go"), "package main")

	cfg := settings.Settings{Workspaces: []settings.Workspace{{Path: root, DisplayName: "proj"}}}
	store := newTestStore(t, cfg)
	r := New(store, mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml")))

	req := &parser.Request{Kind: parser.KindPartialPath, Path: "main.go"}
	res, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindResolved {
		t.Fatalf("expected Resolved, got %v", res.Kind)
	}
}

func TestResolvePartialPath_NoMatch(t *testing.T) {
	root := t.TempDir()
	cfg := settings.Settings{Workspaces: []settings.Workspace{{Path: root, DisplayName: "proj"}}}
	store := newTestStore(t, cfg)
	r := New(store, mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml")))

	req := &parser.Request{Kind: parser.KindPartialPath, Path: "missing.go"}
	res, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindNotFound {
		t.Fatalf("expected NotFound, got %v", res.Kind)
	}
}

func TestResolvePartialPath_PrefersWorkspaceHint(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, filepath.Join(rootA, "dup.go"), "package a")
	writeFile(t, filepath.Join(rootB, "dup.go"), "package b")

	cfg := settings.Settings{Workspaces: []settings.Workspace{
		{Path: rootA, DisplayName: "alpha"},
		{Path: rootB, DisplayName: "beta"},
	}}
	store := newTestStore(t, cfg)
	r := New(store, mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml")))

	req := &parser.Request{Kind: parser.KindPartialPath, Path: "dup.go", WorkspaceHint: "beta"}
	res, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindMultipleCandidates {
		t.Fatalf("expected MultipleCandidates, got %v", res.Kind)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	if filepath.Dir(res.Candidates[0].AbsolutePath) != mustCanonical(t, rootB) {
		t.Errorf("expected match from beta workspace first, got %s", res.Candidates[0].AbsolutePath)
	}
}

func mustCanonical(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func TestResolveFullPath_OutsideWorkspaceRejected(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "secret.txt")
	writeFile(t, outside, "shh")

	cfg := settings.Settings{
		Workspaces:             []settings.Workspace{{Path: root, DisplayName: "proj"}},
		AllowNonWorkspaceFiles: false,
	}
	store := newTestStore(t, cfg)
	r := New(store, mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml")))

	req := &parser.Request{Kind: parser.KindFullPath, AbsolutePath: outside}
	_, err := r.Resolve(req)
	if err == nil {
		t.Fatal("expected OutsideWorkspace error")
	}
}

func TestResolveProviderPassthrough_Unmapped(t *testing.T) {
	cfg := settings.Settings{}
	store := newTestStore(t, cfg)
	r := New(store, mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml")))

	req := &parser.Request{
		Kind:          parser.KindProviderPassthrough,
		ProviderHost:  "github.com",
		OwnerRepoPath: "owner/myrepo/blob/main/src/lib.rs",
		Fragment:      "L42",
	}
	res, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindUnmappedProvider {
		t.Fatalf("expected UnmappedProvider, got %v", res.Kind)
	}
}

func TestResolveProviderPassthrough_MappedToWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "lib.rs"), "fn x() {}")

	cfg := settings.Settings{Workspaces: []settings.Workspace{{Path: root, DisplayName: "myrepo"}}}
	store := newTestStore(t, cfg)
	r := New(store, mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml")))

	req := &parser.Request{
		Kind:          parser.KindProviderPassthrough,
		ProviderHost:  "github.com",
		OwnerRepoPath: "owner/myrepo/blob/main/src/lib.rs",
		Fragment:      "L42",
	}
	res, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindResolved {
		t.Fatalf("expected Resolved, got %v (%s)", res.Kind, res.Reason)
	}
	if res.Line == nil || *res.Line != 42 {
		t.Errorf("expected line 42, got %v", res.Line)
	}
}

func TestMRUOrdering_DescendingRecency(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, filepath.Join(rootA, "dup.go"), "package a")
	writeFile(t, filepath.Join(rootB, "dup.go"), "package b")

	cfg := settings.Settings{Workspaces: []settings.Workspace{
		{Path: rootA, DisplayName: "alpha"},
		{Path: rootB, DisplayName: "beta"},
	}}
	store := newTestStore(t, cfg)
	mruStore := mru.NewStore(filepath.Join(t.TempDir(), "mru.yaml"))
	mruStore.Apply(map[string]time.Time{
		"alpha": time.Now().Add(-time.Hour),
		"beta":  time.Now(),
	})
	r := New(store, mruStore)

	req := &parser.Request{Kind: parser.KindPartialPath, Path: "dup.go"}
	res, err := r.Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindMultipleCandidates {
		t.Fatalf("expected MultipleCandidates, got %v", res.Kind)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	if filepath.Dir(res.Candidates[0].AbsolutePath) != mustCanonical(t, rootB) {
		t.Errorf("expected the more-recently-active workspace (beta) first, got %s", res.Candidates[0].AbsolutePath)
	}
}
