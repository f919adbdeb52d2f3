package editors

import (
	"path/filepath"
	"strings"

	"github.com/browserup/sorcery-desktop/internal/procscan"
)

// processInstancesByBinaryName reports every running process whose command
// name matches binaryName. On non-Linux platforms procscan.Processes
// returns nothing, so this degrades to an empty list rather than an error
// — matching the closed-set "absent signal, not a failure" discipline used
// throughout the MRU tracker.
func processInstancesByBinaryName(binaryName string) ([]Instance, error) {
	procs := procscan.Processes()
	var out []Instance
	for _, p := range procs {
		if strings.EqualFold(p.Comm, binaryName) || strings.EqualFold(filepath.Base(p.Comm), binaryName) {
			out = append(out, Instance{PID: p.PID, Workspace: p.Cwd})
		}
	}
	return out, nil
}
