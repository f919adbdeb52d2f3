package mru

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// watchSet tracks one best-effort fsnotify.Watcher per workspace root, each
// watching only the root plus its allow-listed subdirectories (the same
// set fsFallbackSignal walks). It is purely an optimization: quiet reports
// whether anything has fired since the last check, letting the engine
// skip fsFallbackSignal's stat() walk on an untouched workspace. A
// watcher that can't be set up (platform limits, inotify exhaustion)
// simply never reports quiet, so the walk always runs for that
// workspace — this never trades correctness for speed, only speed for
// more speed.
type watchSet struct {
	mu       sync.Mutex
	watchers map[string]*trackedWatcher
}

type trackedWatcher struct {
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	dirty   bool
}

func newWatchSet() *watchSet {
	return &watchSet{watchers: make(map[string]*trackedWatcher)}
}

// ensure starts watching root (and its allow-listed subdirectories) the
// first time it's seen; subsequent calls are no-ops.
func (w *watchSet) ensure(root string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.watchers[root]; ok {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	_ = watcher.Add(root)
	for _, name := range allowlistedSubdirs {
		_ = watcher.Add(filepath.Join(root, name))
	}

	tw := &trackedWatcher{watcher: watcher, dirty: true}
	w.watchers[root] = tw
	go tw.drain()
}

// drain marks tw dirty on every event or error until the watcher is closed.
func (tw *trackedWatcher) drain() {
	for {
		select {
		case _, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			tw.mu.Lock()
			tw.dirty = true
			tw.mu.Unlock()
		case _, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			tw.mu.Lock()
			tw.dirty = true
			tw.mu.Unlock()
		}
	}
}

// quiet reports whether root has been quiet since the previous call,
// consuming the dirty flag in the process. A workspace with no watcher
// (setup failed, or first call) is never considered quiet.
func (w *watchSet) quiet(root string) bool {
	w.mu.Lock()
	tw, ok := w.watchers[root]
	w.mu.Unlock()
	if !ok {
		return false
	}

	tw.mu.Lock()
	defer tw.mu.Unlock()
	wasDirty := tw.dirty
	tw.dirty = false
	return !wasDirty
}

// close shuts down every tracked watcher.
func (w *watchSet) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, tw := range w.watchers {
		_ = tw.watcher.Close()
	}
}
