package main

import (
	"fmt"
	"io"
	"io/ioutil"
	stdlog "log"
	"path/filepath"
	"sort"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/browserup/sorcery-desktop/cli"
	"github.com/browserup/sorcery-desktop/pkg/paths"
)

func newLogsCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("logs", "Inspect the dispatcher's log output")
	cmd.AddCommand(newLogsTailCmd())
	return cmd
}

func newLogsTailCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("tail", "Tail the most recent dispatcher log file")
	cmd.Flags().BoolP("follow", "f", false, "Keep streaming new lines as they're written")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")

		path, err := latestLogFile()
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Println("No log files found.")
			return nil
		}

		cfg := tail.Config{
			Follow:   follow,
			ReOpen:   follow,
			Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
			Logger:   stdlog.New(ioutil.Discard, "", 0),
		}

		t, err := tail.TailFile(path, cfg)
		if err != nil {
			return fmt.Errorf("tail %s: %w", path, err)
		}

		for line := range t.Lines {
			if line.Err != nil {
				continue
			}
			fmt.Println(line.Text)
		}
		return nil
	}
	return cmd
}

// latestLogFile returns the newest "sorcery-desktop-*.log" entry in the
// state log directory, matching the filename logging.NewLogger writes.
func latestLogFile() (string, error) {
	matches, err := filepath.Glob(filepath.Join(paths.LogDir(), "sorcery-desktop-*.log"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
