package editors

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

// vscodeConfig is one member of the VS Code-shaped editor family: every
// one of these ships a CLI named cliName and, on macOS, an app bundle
// named macOSAppName under /Applications.
type vscodeConfig struct {
	id, displayName, cliName, macOSAppName string
}

var vscodeFamily = []vscodeConfig{
	{"vscode", "Visual Studio Code", "code", "Visual Studio Code"},
	{"cursor", "Cursor", "cursor", "Cursor"},
	{"vscodium", "VSCodium", "codium", "VSCodium"},
	{"windsurf", "Windsurf", "windsurf", "Windsurf"},
}

// vscodeManager drives any VS Code-family fork: `<cli> --goto file:line:col`,
// optionally `--new-window` / `--reuse-window`.
type vscodeManager struct {
	cfg   vscodeConfig
	cache binaryCache
}

func newVSCodeManager(cfg vscodeConfig) *vscodeManager {
	return &vscodeManager{cfg: cfg}
}

func (m *vscodeManager) ID() string          { return m.cfg.id }
func (m *vscodeManager) DisplayName() string { return m.cfg.displayName }

func (m *vscodeManager) IsInstalled(ctx context.Context) bool {
	_, ok := m.FindBinary(ctx)
	return ok
}

func (m *vscodeManager) FindBinary(ctx context.Context) (string, bool) {
	if path, found, ok := m.cache.get(); ok {
		return path, found
	}

	path, found := m.locateBinary()
	m.cache.set(path, found)
	return path, found
}

func (m *vscodeManager) locateBinary() (string, bool) {
	var candidates []string
	if runtime.GOOS == "darwin" {
		candidates = append(candidates,
			filepath.Join("/Applications", m.cfg.macOSAppName+".app", "Contents/Resources/app/bin", m.cfg.cliName),
			filepath.Join("/usr/local/bin", m.cfg.cliName),
			filepath.Join("/opt/homebrew/bin", m.cfg.cliName),
		)
	}
	for _, c := range candidates {
		if pathExists(c) {
			return c, true
		}
	}
	if found, err := exec.LookPath(m.cfg.cliName); err == nil {
		return found, true
	}
	return "", false
}

func (m *vscodeManager) Open(ctx context.Context, path string, opts OpenOptions) error {
	bin, ok := m.FindBinary(ctx)
	if !ok {
		return apperr.New(apperr.KindNoEditor, m.cfg.displayName+" binary not found")
	}

	args := []string{}
	if opts.NewWindow {
		args = append(args, "--new-window")
	} else {
		args = append(args, "--reuse-window")
	}

	if opts.Line != nil {
		goTo := fmt.Sprintf("%s:%d", path, *opts.Line)
		if opts.Col != nil {
			goTo = fmt.Sprintf("%s:%d", goTo, *opts.Col)
		}
		args = append(args, "--goto", goTo)
	} else {
		args = append(args, path)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		m.cache.invalidate()
		return apperr.Wrap(apperr.KindLaunchFailed, "failed to launch "+m.cfg.displayName, err)
	}
	return nil
}

func (m *vscodeManager) RunningInstances(ctx context.Context) ([]Instance, error) {
	return processInstancesByBinaryName(m.cfg.cliName)
}
