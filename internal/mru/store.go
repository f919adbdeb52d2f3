// Package mru tracks workspace activity in the background so the resolver
// can rank PartialPath candidates by recency. It follows the daemon's
// engine/collector/store split: an Engine drives a fixed poll interval, a
// set of signal collectors each contribute an optional timestamp per
// workspace, and a Store holds the merged result with concurrent-read,
// single-write semantics and atomic on-disk persistence.
package mru

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Store is the in-memory MRU map, safe for one writer (the tracker) and
// many readers.
type Store struct {
	mu   sync.RWMutex
	data map[string]time.Time
	path string
}

type persistedEntry struct {
	LastActive time.Time `yaml:"last_active"`
}

// NewStore creates a Store that persists to path.
func NewStore(path string) *Store {
	return &Store{data: make(map[string]time.Time), path: path}
}

// Load reads the persisted map from disk. A missing or corrupt file yields
// an empty map rather than an error: MRU state is a cache, never a source
// of truth that should block startup.
func (s *Store) Load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var onDisk map[string]persistedEntry
	if err := yaml.Unmarshal(raw, &onDisk); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for workspace, entry := range onDisk {
		s.data[workspace] = entry.LastActive
	}
}

// Get returns the last-active time for a workspace, if known.
func (s *Store) Get(workspace string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.data[workspace]
	return t, ok
}

// All returns a snapshot copy of the entire map; readers never block the
// poller and never observe a torn write.
func (s *Store) All() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]time.Time, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Apply merges freshly-collected signals into the store. For each
// workspace the caller has already computed the max across its active
// signals for this cycle; Apply simply replaces the stored value.
func (s *Store) Apply(signals map[string]time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for workspace, t := range signals {
		s.data[workspace] = t
	}
}

// Persist writes the full map to disk atomically (temp file + rename).
func (s *Store) Persist() error {
	s.mu.RLock()
	onDisk := make(map[string]persistedEntry, len(s.data))
	for k, v := range s.data {
		onDisk[k] = persistedEntry{LastActive: v}
	}
	s.mu.RUnlock()

	out, err := yaml.Marshal(onDisk)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".workspace_mru-*.yaml.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.path)
}
