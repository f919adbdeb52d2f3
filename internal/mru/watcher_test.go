package mru

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchSet_QuietBeforeAnyEvent(t *testing.T) {
	root := t.TempDir()
	ws := newWatchSet()
	defer ws.close()

	ws.ensure(root)
	if ws.quiet(root) {
		t.Error("expected first check after ensure to be dirty (initial scan still owed)")
	}
	if !ws.quiet(root) {
		t.Error("expected second check with no activity to be quiet")
	}
}

func TestWatchSet_DirtyAfterWrite(t *testing.T) {
	root := t.TempDir()
	ws := newWatchSet()
	defer ws.close()

	ws.ensure(root)
	ws.quiet(root) // consume the initial forced-dirty state

	if err := os.WriteFile(filepath.Join(root, "touched.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	sawDirty := false
	for time.Now().Before(deadline) {
		if !ws.quiet(root) {
			sawDirty = true
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if !sawDirty {
		t.Error("expected a write to the watched root to eventually be observed as dirty")
	}
}

func TestWatchSet_UnknownRootIsNeverQuiet(t *testing.T) {
	ws := newWatchSet()
	defer ws.close()

	if ws.quiet(t.TempDir()) {
		t.Error("expected a root with no watcher to never report quiet")
	}
}
