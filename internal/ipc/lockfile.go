package ipc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// lockRecord is what gets written to the lock file: enough for a second
// instance to find the first and dial its forwarding endpoint.
type lockRecord struct {
	PID  int    `json:"pid"`
	Addr string `json:"addr"`
}

// AcquireOrDiscover writes {pid, addr} to path if no live instance holds
// the lock, returning acquired=true. If a live instance already holds it,
// it returns that instance's address with acquired=false so the caller
// can forward to it instead.
func AcquireOrDiscover(path, addr string) (existingAddr string, acquired bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("ipc: create lock directory: %w", err)
	}

	if content, readErr := os.ReadFile(path); readErr == nil {
		var rec lockRecord
		if json.Unmarshal(content, &rec) == nil && pidAlive(rec.PID) {
			return rec.Addr, false, nil
		}
		_ = os.Remove(path)
	}

	b, err := marshalErr(lockRecord{PID: os.Getpid(), Addr: addr})
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", false, fmt.Errorf("ipc: write lock file: %w", err)
	}
	return "", true, nil
}

// Release removes the lock file; call on clean shutdown of the primary
// instance.
func Release(path string) error {
	return os.Remove(path)
}

// pidAlive reports whether pid names a live, signalable process. Same
// signal-0 probe the teacher's process package uses: no dedicated library
// in the pack does this any more portably, and it is four lines of
// syscall, not a subsystem worth a dependency.
func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || os.IsPermission(err)
}
