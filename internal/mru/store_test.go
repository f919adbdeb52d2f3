package mru

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_ApplyPersistLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace_mru.yaml")
	s := NewStore(path)

	now := time.Now().Truncate(time.Second)
	s.Apply(map[string]time.Time{"proj": now})

	if err := s.Persist(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := NewStore(path)
	reloaded.Load()

	got, ok := reloaded.Get("proj")
	if !ok {
		t.Fatal("expected entry to round-trip")
	}
	if !got.Equal(now) {
		t.Errorf("expected %v, got %v", now, got)
	}
}

func TestStore_MissingFileLoadsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	s.Load()
	if len(s.All()) != 0 {
		t.Errorf("expected empty map, got %v", s.All())
	}
}

func TestStore_CorruptFileLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace_mru.yaml")
	s := NewStore(path)
	if err := writeFile(path, "not: valid: yaml: ["); err != nil {
		t.Fatal(err)
	}
	s.Load()
	if len(s.All()) != 0 {
		t.Errorf("expected empty map for corrupt file, got %v", s.All())
	}
}

func TestStore_AllReturnsSnapshotCopy(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "workspace_mru.yaml"))
	s.Apply(map[string]time.Time{"a": time.Now()})

	snapshot := s.All()
	snapshot["b"] = time.Now()

	if _, ok := s.Get("b"); ok {
		t.Error("mutating the snapshot must not affect the store")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
