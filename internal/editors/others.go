package editors

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

// xcodeManager opens a path in Xcode via `open -a Xcode`. Xcode has no
// file:line CLI argument and no folder-project model here, matching the
// original's "Xcode has no persistent running-instance query" stance.
type xcodeManager struct{ cache binaryCache }

func newXcodeManager() *xcodeManager { return &xcodeManager{} }

func (m *xcodeManager) ID() string          { return "xcode" }
func (m *xcodeManager) DisplayName() string { return "Xcode" }

func (m *xcodeManager) IsInstalled(ctx context.Context) bool {
	_, ok := m.FindBinary(ctx)
	return ok
}

func (m *xcodeManager) FindBinary(ctx context.Context) (string, bool) {
	if path, found, ok := m.cache.get(); ok {
		return path, found
	}
	const path = "/Applications/Xcode.app/Contents/MacOS/Xcode"
	found := pathExists(path)
	m.cache.set(path, found)
	return path, found
}

func (m *xcodeManager) Open(ctx context.Context, path string, opts OpenOptions) error {
	if !m.IsInstalled(ctx) {
		return apperr.New(apperr.KindNoEditor, "Xcode not found")
	}
	cmd := exec.CommandContext(ctx, "open", "-a", "Xcode", path)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		return apperr.Wrap(apperr.KindLaunchFailed, "failed to launch Xcode", err)
	}
	return nil
}

func (m *xcodeManager) RunningInstances(ctx context.Context) ([]Instance, error) {
	return nil, nil
}

// zedManager opens a path in Zed: `zed <path>[:<line>]`.
type zedManager struct{ cache binaryCache }

func newZedManager() *zedManager { return &zedManager{} }

func (m *zedManager) ID() string          { return "zed" }
func (m *zedManager) DisplayName() string { return "Zed" }

func (m *zedManager) IsInstalled(ctx context.Context) bool {
	_, ok := m.FindBinary(ctx)
	return ok
}

func (m *zedManager) FindBinary(ctx context.Context) (string, bool) {
	if path, found, ok := m.cache.get(); ok {
		return path, found
	}
	candidates := []string{
		"/Applications/Zed.app/Contents/MacOS/cli",
		"/usr/local/bin/zed",
		"/opt/homebrew/bin/zed",
	}
	for _, c := range candidates {
		if pathExists(c) {
			m.cache.set(c, true)
			return c, true
		}
	}
	if found, err := exec.LookPath("zed"); err == nil {
		m.cache.set(found, true)
		return found, true
	}
	m.cache.set("", false)
	return "", false
}

func (m *zedManager) Open(ctx context.Context, path string, opts OpenOptions) error {
	bin, ok := m.FindBinary(ctx)
	if !ok {
		return apperr.New(apperr.KindNoEditor, "Zed binary not found")
	}

	arg := path
	if opts.Line != nil {
		arg = fmt.Sprintf("%s:%d", path, *opts.Line)
	}
	cmd := exec.CommandContext(ctx, bin, arg)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		m.cache.invalidate()
		return apperr.Wrap(apperr.KindLaunchFailed, "failed to launch Zed", err)
	}
	return nil
}

func (m *zedManager) RunningInstances(ctx context.Context) ([]Instance, error) {
	return processInstancesByBinaryName("zed")
}

// sublimeManager opens a path in Sublime Text: `subl <path>[:<line>[:<col>]]`.
type sublimeManager struct{ cache binaryCache }

func newSublimeManager() *sublimeManager { return &sublimeManager{} }

func (m *sublimeManager) ID() string          { return "sublime" }
func (m *sublimeManager) DisplayName() string { return "Sublime Text" }

func (m *sublimeManager) IsInstalled(ctx context.Context) bool {
	_, ok := m.FindBinary(ctx)
	return ok
}

func (m *sublimeManager) FindBinary(ctx context.Context) (string, bool) {
	if path, found, ok := m.cache.get(); ok {
		return path, found
	}
	candidates := []string{
		"/Applications/Sublime Text.app/Contents/SharedSupport/bin/subl",
		"/usr/local/bin/subl",
		"/opt/homebrew/bin/subl",
	}
	for _, c := range candidates {
		if pathExists(c) {
			m.cache.set(c, true)
			return c, true
		}
	}
	if found, err := exec.LookPath("subl"); err == nil {
		m.cache.set(found, true)
		return found, true
	}
	m.cache.set("", false)
	return "", false
}

func (m *sublimeManager) Open(ctx context.Context, path string, opts OpenOptions) error {
	bin, ok := m.FindBinary(ctx)
	if !ok {
		return apperr.New(apperr.KindNoEditor, "Sublime Text binary not found")
	}

	arg := path
	if opts.Line != nil {
		arg = fmt.Sprintf("%s:%d", path, *opts.Line)
		if opts.Col != nil {
			arg = fmt.Sprintf("%s:%d", arg, *opts.Col)
		}
	}
	cmd := exec.CommandContext(ctx, bin, arg)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		m.cache.invalidate()
		return apperr.Wrap(apperr.KindLaunchFailed, "failed to launch Sublime Text", err)
	}
	return nil
}

func (m *sublimeManager) RunningInstances(ctx context.Context) ([]Instance, error) {
	return processInstancesByBinaryName("subl")
}
