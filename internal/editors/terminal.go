package editors

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

// lineArgFunc builds the positional/line argument for a terminal editor's
// CLI, since the "open at line N" flag differs per program (vim/emacs use
// "+N", kakoune uses "+N:M", kate uses "-l N").
type lineArgFunc func(path string, line, col *int) []string

type terminalEditorConfig struct {
	id, displayName, binary string
	lineArgs                lineArgFunc
}

func plusLineArgs(path string, line, col *int) []string {
	if line == nil {
		return []string{path}
	}
	if col != nil {
		return []string{fmt.Sprintf("+call cursor(%d,%d)", *line, *col), path}
	}
	return []string{fmt.Sprintf("+%d", *line), path}
}

func kakouneLineArgs(path string, line, col *int) []string {
	if line == nil {
		return []string{path}
	}
	if col != nil {
		return []string{fmt.Sprintf("+%d:%d", *line, *col), path}
	}
	return []string{fmt.Sprintf("+%d", *line), path}
}

func kateLineArgs(path string, line, col *int) []string {
	if line == nil {
		return []string{path}
	}
	return []string{"-l", fmt.Sprintf("%d", *line), path}
}

func nanoLineArgs(path string, line, col *int) []string {
	if line == nil {
		return []string{path}
	}
	if col != nil {
		return []string{fmt.Sprintf("+%d,%d", *line, *col), path}
	}
	return []string{fmt.Sprintf("+%d", *line), path}
}

var terminalEditors = []terminalEditorConfig{
	{"vim", "Vim", "vim", plusLineArgs},
	{"emacs", "Emacs", "emacs", plusLineArgs},
	{"nano", "Nano", "nano", nanoLineArgs},
	{"micro", "Micro", "micro", plusLineArgs},
	{"kakoune", "Kakoune", "kak", kakouneLineArgs},
	{"kate", "Kate", "kate", kateLineArgs},
}

// terminalEditorManager launches a console-based editor inside a detected
// terminal emulator, or directly if no terminal emulator is detected.
type terminalEditorManager struct {
	cfg               terminalEditorConfig
	cache             binaryCache
	preferredTerminal func() string
}

func newTerminalEditorManager(cfg terminalEditorConfig) *terminalEditorManager {
	return &terminalEditorManager{cfg: cfg, preferredTerminal: defaultTerminalLauncher}
}

// SetPreferredTerminal overrides which terminal emulator Open prefers, per
// the settings document's preferred_terminal field.
func (m *terminalEditorManager) SetPreferredTerminal(name string) {
	m.preferredTerminal = func() string { return name }
}

func (m *terminalEditorManager) ID() string          { return m.cfg.id }
func (m *terminalEditorManager) DisplayName() string { return m.cfg.displayName }

func (m *terminalEditorManager) IsInstalled(ctx context.Context) bool {
	_, ok := m.FindBinary(ctx)
	return ok
}

func (m *terminalEditorManager) FindBinary(ctx context.Context) (string, bool) {
	if path, found, ok := m.cache.get(); ok {
		return path, found
	}
	path, err := exec.LookPath(m.cfg.binary)
	found := err == nil
	m.cache.set(path, found)
	return path, found
}

func (m *terminalEditorManager) Open(ctx context.Context, path string, opts OpenOptions) error {
	bin, ok := m.FindBinary(ctx)
	if !ok {
		return apperr.New(apperr.KindNoEditor, m.cfg.displayName+" binary not found")
	}

	editorArgs := m.cfg.lineArgs(path, opts.Line, opts.Col)

	term, ok := detectTerminal(m.preferredTerminal())
	var cmd *exec.Cmd
	if ok {
		cmd = exec.CommandContext(ctx, term.binary, term.runArgsFunc(append([]string{bin}, editorArgs...))...)
	} else {
		cmd = exec.CommandContext(ctx, bin, editorArgs...)
	}
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin

	if err := cmd.Start(); err != nil {
		m.cache.invalidate()
		return apperr.Wrap(apperr.KindLaunchFailed, "failed to launch "+m.cfg.displayName, err)
	}
	return nil
}

func (m *terminalEditorManager) RunningInstances(ctx context.Context) ([]Instance, error) {
	return processInstancesByBinaryName(m.cfg.binary)
}
