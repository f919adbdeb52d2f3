package editors

import (
	"os/exec"
	"runtime"
	"strings"
)

// terminalCandidate pairs a terminal's canonical name with how to detect
// and invoke it: a macOS app bundle to check for existence, and the CLI
// binary used to launch it with an argument list to run.
type terminalCandidate struct {
	name        string
	macOSApp    string
	binary      string
	runArgsFunc func(cliArgs []string) []string
}

var terminalCandidates = []terminalCandidate{
	{"iterm2", "/Applications/iTerm.app", "open", func(a []string) []string {
		return append([]string{"-a", "iTerm"}, a...)
	}},
	{"alacritty", "/Applications/Alacritty.app", "alacritty", func(a []string) []string {
		return append([]string{"-e"}, a...)
	}},
	{"kitty", "/Applications/kitty.app", "kitty", func(a []string) []string { return a }},
	{"wezterm", "/Applications/WezTerm.app", "wezterm", func(a []string) []string {
		return append([]string{"start", "--"}, a...)
	}},
	{"gnome-terminal", "", "gnome-terminal", func(a []string) []string {
		return append([]string{"--"}, a...)
	}},
	{"konsole", "", "konsole", func(a []string) []string {
		return append([]string{"-e"}, a...)
	}},
	{"xterm", "", "xterm", func(a []string) []string {
		return append([]string{"-e"}, a...)
	}},
}

// detectTerminal picks a terminal emulator: the user's preference if
// installed, otherwise the first installed candidate for this platform.
// Returns ok=false when no terminal could be found (the caller then runs
// the editor directly in whatever terminal launched this process).
func detectTerminal(preferred string) (terminalCandidate, bool) {
	if preferred != "" && preferred != "auto" {
		for _, c := range terminalCandidates {
			if strings.EqualFold(c.name, preferred) && terminalInstalled(c) {
				return c, true
			}
		}
	}
	for _, c := range terminalCandidates {
		if terminalInstalled(c) {
			return c, true
		}
	}
	return terminalCandidate{}, false
}

func terminalInstalled(c terminalCandidate) bool {
	if runtime.GOOS == "darwin" && c.macOSApp != "" {
		return pathExists(c.macOSApp)
	}
	if c.macOSApp != "" {
		// macOS-only terminal (iTerm2, Alacritty.app bundle, etc.) on a
		// non-macOS host: never matches.
		return false
	}
	_, err := exec.LookPath(c.binary)
	return err == nil
}
