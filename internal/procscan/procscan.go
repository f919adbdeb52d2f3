// Package procscan enumerates running processes and their working
// directories for the MRU tracker's process-in-workspace signal.
//
// No library in the dependency corpus provides process-cwd enumeration
// (gopsutil, sysinfo, and similar are absent from the entire example set);
// this package reads /proc directly on Linux, which is the only OS the
// corpus's daemon/tracker code targets in practice. On other platforms
// Processes returns an empty list — the caller treats an absent signal as
// "contributes nothing", never as an error.
package procscan

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Process is a running process's PID, resolved working directory, and
// command name (the latter used to recognize running editor instances).
type Process struct {
	PID  int
	Cwd  string
	Comm string
}

// Processes returns a snapshot of every process the caller can read the
// cwd of. It never returns an error: permission-denied and nonexistent
// entries are skipped individually.
func Processes() []Process {
	if runtime.GOOS != "linux" {
		return nil
	}
	return processesLinux()
}

func processesLinux() []Process {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil
	}

	var procs []Process
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		cwd, err := os.Readlink(filepath.Join("/proc", e.Name(), "cwd"))
		if err != nil || cwd == "" {
			continue
		}
		comm, _ := os.ReadFile(filepath.Join("/proc", e.Name(), "comm"))
		procs = append(procs, Process{PID: pid, Cwd: cwd, Comm: strings.TrimSpace(string(comm))})
	}
	return procs
}

// AnyInDirectory reports whether any process's cwd is canonically inside
// dir (dir itself counts as "inside").
func AnyInDirectory(procs []Process, dir string) bool {
	clean := filepath.Clean(dir)
	for _, p := range procs {
		cwd := filepath.Clean(p.Cwd)
		if cwd == clean || strings.HasPrefix(cwd, clean+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
