package settings

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store is the in-memory settings snapshot: reads take a shared lock,
// writes take an exclusive lock and flush atomically.
type Store struct {
	mu       sync.RWMutex
	current  Settings
	path     string
	validate func(Settings) error
}

// NewStore creates a Store backed by path. validate may be nil.
func NewStore(path string, defaults Settings, validate func(Settings) error) *Store {
	return &Store{current: defaults, path: path, validate: validate}
}

// Load reads settings.yaml from disk, replacing the in-memory snapshot on
// success. A missing file keeps the current (default) snapshot. A corrupt
// file is reported to the caller rather than silently discarded — the spec
// requires corrupt state to be reported and replaced with defaults, never
// deleted silently.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var loaded Settings
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return &CorruptError{Path: s.path, Cause: err}
	}

	if s.validate != nil {
		if err := s.validate(loaded); err != nil {
			return &CorruptError{Path: s.path, Cause: err}
		}
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the current settings snapshot.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save replaces the in-memory snapshot and persists it atomically
// (temp file + rename).
func (s *Store) Save(next Settings) error {
	if s.validate != nil {
		if err := s.validate(next); err != nil {
			return err
		}
	}

	raw, err := yaml.Marshal(next)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.yaml.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return err
	}

	s.current = next
	return nil
}

// CorruptError reports that the settings file on disk could not be parsed
// or failed schema validation.
type CorruptError struct {
	Path  string
	Cause error
}

func (e *CorruptError) Error() string {
	return "corrupt settings file " + e.Path + ": " + e.Cause.Error()
}

func (e *CorruptError) Unwrap() error { return e.Cause }
