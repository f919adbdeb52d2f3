// Command sorcery-desktop-ctl is a diagnostic companion to the
// sorcery-desktop protocol handler: it inspects the same on-disk state
// (settings, MRU cache, worktrees, editor registry, launch log) without
// going through the srcuri:// dispatch path.
package main

import (
	"fmt"
	"os"

	"github.com/browserup/sorcery-desktop/cli"
)

func main() {
	root := cli.NewStandardCommand("sorcery-desktop-ctl", "Inspect sorcery-desktop's configuration, MRU cache, and worktrees")
	root.Long = `sorcery-desktop-ctl inspects the state the srcuri:// protocol handler
reads and writes: settings.yaml, the workspace MRU cache, git worktrees
created on your behalf, the editor registry, and the dispatcher's log.`

	root.AddCommand(newSettingsCmd())
	root.AddCommand(newMRUCmd())
	root.AddCommand(newWorktreeCmd())
	root.AddCommand(newEditorsCmd())
	root.AddCommand(newLogsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
