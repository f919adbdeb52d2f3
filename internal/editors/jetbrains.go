package editors

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/browserup/sorcery-desktop/internal/apperr"
)

type jetbrainsConfig struct {
	id, displayName, toolboxID, cliName string
}

var jetbrainsFamily = []jetbrainsConfig{
	{"idea", "IntelliJ IDEA", "intellij-idea-ultimate", "idea"},
	{"webstorm", "WebStorm", "WebStorm", "webstorm"},
	{"pycharm", "PyCharm", "pycharm-professional", "pycharm"},
	{"phpstorm", "PhpStorm", "PhpStorm", "phpstorm"},
	{"rubymine", "RubyMine", "RubyMine", "rubymine"},
	{"goland", "GoLand", "GoLand", "goland"},
	{"clion", "CLion", "CLion", "clion"},
	{"rider", "Rider", "Rider", "rider"},
	{"datagrip", "DataGrip", "DataGrip", "datagrip"},
	{"androidstudio", "Android Studio", "AndroidStudio", "studio"},
	{"fleet", "Fleet", "Fleet", "fleet"},
}

// jetbrainsManager discovers editors installed through JetBrains Toolbox,
// whose installs live under a per-product directory with "ch-0"/"ch-1"
// channel subdirectories, the newest of which wins.
type jetbrainsManager struct {
	cfg   jetbrainsConfig
	cache binaryCache
}

func newJetBrainsManager(cfg jetbrainsConfig) *jetbrainsManager {
	return &jetbrainsManager{cfg: cfg}
}

func (m *jetbrainsManager) ID() string          { return m.cfg.id }
func (m *jetbrainsManager) DisplayName() string { return m.cfg.displayName }

func (m *jetbrainsManager) IsInstalled(ctx context.Context) bool {
	_, ok := m.FindBinary(ctx)
	return ok
}

func (m *jetbrainsManager) FindBinary(ctx context.Context) (string, bool) {
	if path, found, ok := m.cache.get(); ok {
		return path, found
	}
	path, found := m.locateBinary()
	m.cache.set(path, found)
	return path, found
}

func (m *jetbrainsManager) locateBinary() (string, bool) {
	if runtime.GOOS == "darwin" {
		if path, ok := m.locateToolboxMacOS(); ok {
			return path, true
		}
	}
	if found, err := exec.LookPath(m.cfg.cliName); err == nil {
		return found, true
	}
	return "", false
}

func (m *jetbrainsManager) locateToolboxMacOS() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	toolboxApps := filepath.Join(home, "Library/Application Support/JetBrains/Toolbox/apps")
	productDir := filepath.Join(toolboxApps, m.cfg.toolboxID)
	appName := m.cfg.displayName + ".app"

	for _, channel := range []string{"ch-0", "ch-1"} {
		channelDir := filepath.Join(productDir, channel)
		latest, ok := latestSubdir(channelDir)
		if !ok {
			continue
		}
		appPath := filepath.Join(latest, appName, "Contents/MacOS", appName[:len(appName)-len(".app")])
		if pathExists(filepath.Dir(appPath)) {
			return appPath, true
		}
	}
	return "", false
}

func latestSubdir(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var newest os.FileInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == nil || info.ModTime().After(newest.ModTime()) {
			newest = info
		}
	}
	if newest == nil {
		return "", false
	}
	return filepath.Join(dir, newest.Name()), true
}

func (m *jetbrainsManager) Open(ctx context.Context, path string, opts OpenOptions) error {
	bin, ok := m.FindBinary(ctx)
	if !ok {
		return apperr.New(apperr.KindNoEditor, m.cfg.displayName+" binary not found")
	}

	args := []string{}
	if opts.Line != nil {
		line := *opts.Line
		col := 1
		if opts.Col != nil {
			col = *opts.Col
		}
		args = append(args, "--line", strconv.Itoa(line), "--column", strconv.Itoa(col))
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		m.cache.invalidate()
		return apperr.Wrap(apperr.KindLaunchFailed, "failed to launch "+m.cfg.displayName, err)
	}
	return nil
}

func (m *jetbrainsManager) RunningInstances(ctx context.Context) ([]Instance, error) {
	return processInstancesByBinaryName(m.cfg.cliName)
}
