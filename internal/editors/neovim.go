package editors

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/neovim/go-client/nvim"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

// neovimManager prefers attaching to an already-running nvim instance over
// a socket whose reported cwd contains the target file, falling back to
// launching a fresh nvim in the user's preferred terminal. Grounded on the
// original NeovimManager's socket-discovery walk over /tmp and $TMPDIR, but
// driven over the real typed RPC client instead of a custom protocol.
type neovimManager struct {
	cache            binaryCache
	preferredTerminal func() string
}

func newNeovimManager() *neovimManager {
	return &neovimManager{preferredTerminal: defaultTerminalLauncher}
}

// SetPreferredTerminal overrides which terminal emulator launchNew prefers,
// per the settings document's preferred_terminal field.
func (m *neovimManager) SetPreferredTerminal(name string) {
	m.preferredTerminal = func() string { return name }
}

func (m *neovimManager) ID() string          { return "neovim" }
func (m *neovimManager) DisplayName() string { return "Neovim" }

func (m *neovimManager) IsInstalled(ctx context.Context) bool {
	_, ok := m.FindBinary(ctx)
	return ok
}

func (m *neovimManager) FindBinary(ctx context.Context) (string, bool) {
	if path, found, ok := m.cache.get(); ok {
		return path, found
	}
	path, err := exec.LookPath("nvim")
	found := err == nil
	m.cache.set(path, found)
	return path, found
}

func (m *neovimManager) Open(ctx context.Context, path string, opts OpenOptions) error {
	bin, ok := m.FindBinary(ctx)
	if !ok {
		return apperr.New(apperr.KindNoEditor, "nvim binary not found")
	}

	if !opts.NewWindow {
		if socket, ok := m.findSocketForPath(path); ok {
			if err := m.openOverRPC(socket, path, opts); err == nil {
				return nil
			}
			// Stale or unresponsive socket: fall through to a fresh launch.
		}
	}

	return m.launchNew(bin, path, opts)
}

// findSocketForPath scans likely nvim RPC socket locations and returns the
// first one whose reported working directory contains path.
func (m *neovimManager) findSocketForPath(path string) (string, bool) {
	sockets := m.gatherSockets()
	if len(sockets) == 0 {
		return "", false
	}

	target, err := filepath.Abs(path)
	if err != nil {
		target = path
	}

	for _, socket := range sockets {
		v, err := nvim.Dial(socket)
		if err != nil {
			continue
		}
		var cwd string
		_ = v.Eval("getcwd()", &cwd)
		v.Close()
		if cwd != "" && strings.HasPrefix(target, cwd) {
			return socket, true
		}
	}
	return "", false
}

func (m *neovimManager) gatherSockets() []string {
	dirs := []string{"/tmp"}
	if tmp := os.Getenv("TMPDIR"); tmp != "" {
		dirs = append(dirs, tmp)
	}

	var sockets []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.Contains(e.Name(), "nvim") {
				continue
			}
			info, err := e.Info()
			if err != nil || info.Mode().Type()&os.ModeSocket == 0 {
				continue
			}
			sockets = append(sockets, filepath.Join(dir, e.Name()))
		}
	}
	return sockets
}

func (m *neovimManager) openOverRPC(socket, path string, opts OpenOptions) error {
	v, err := nvim.Dial(socket)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := v.Command(fmt.Sprintf("edit %s", escapeVimPath(path))); err != nil {
		return err
	}
	if opts.Line != nil {
		col := 1
		if opts.Col != nil {
			col = *opts.Col
		}
		_ = v.Command(fmt.Sprintf("call cursor(%d, %d)", *opts.Line, col))
	}
	return nil
}

func (m *neovimManager) launchNew(bin, path string, opts OpenOptions) error {
	args := []string{}
	if opts.Line != nil {
		args = append(args, fmt.Sprintf("+%d", *opts.Line))
	}
	args = append(args, path)

	termCmd := m.preferredTerminal()
	var cmd *exec.Cmd
	if termCmd != "" {
		cmd = exec.Command(termCmd, append([]string{bin}, args...)...)
	} else {
		cmd = exec.Command(bin, args...)
	}
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin

	if err := cmd.Start(); err != nil {
		return apperr.Wrap(apperr.KindLaunchFailed, "failed to launch nvim", err)
	}
	return nil
}

func (m *neovimManager) RunningInstances(ctx context.Context) ([]Instance, error) {
	return processInstancesByBinaryName("nvim")
}

func escapeVimPath(path string) string {
	return strings.ReplaceAll(path, " ", "\\ ")
}

// defaultTerminalLauncher returns "" so launchNew runs nvim directly;
// terminalEditorManager overrides this per the user's preferred_terminal
// setting when one is configured.
func defaultTerminalLauncher() string { return "" }
