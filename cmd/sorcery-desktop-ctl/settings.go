package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/browserup/sorcery-desktop/cli"
	"github.com/browserup/sorcery-desktop/internal/settings"
	"github.com/browserup/sorcery-desktop/pkg/paths"
	"github.com/browserup/sorcery-desktop/tui/components/table"
)

func newSettingsCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("settings", "Inspect sorcery-desktop's persisted settings")
	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsDiscoverCmd())
	return cmd
}

func loadSettingsForCmd(cmd *cobra.Command) (settings.Settings, error) {
	opts := cli.GetOptions(cmd)
	path := cli.ResolveSettingsPath(opts.SettingsFile)
	defaults := settings.Default(paths.ConfigDir(), "", paths.WorktreeRoot())
	store := settings.NewStore(path, defaults, settings.Validate)
	if err := store.Load(); err != nil {
		return settings.Settings{}, err
	}
	return store.Get(), nil
}

func newSettingsShowCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("show", "Print the current settings document")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		current, err := loadSettingsForCmd(cmd)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		opts := cli.GetOptions(cmd)
		if opts.JSONOutput {
			out, err := json.MarshalIndent(current, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		rows := [][]string{
			{"default_editor_id", current.DefaultEditorID},
			{"preferred_terminal", current.PreferredTerminal},
			{"allow_non_workspace_files", fmt.Sprintf("%v", current.AllowNonWorkspaceFiles)},
			{"auto_switch_clean_branches", fmt.Sprintf("%v", current.AutoSwitchCleanBranches)},
			{"repo_base_dir", current.RepoBaseDir},
			{"worktree_root", current.WorktreeRoot},
			{"max_worktrees_per_repo", fmt.Sprintf("%d", current.MaxWorktreesPerRepo)},
			{"workspaces", fmt.Sprintf("%d configured", len(current.Workspaces))},
		}
		fmt.Println(table.StatusTable(rows))

		for _, ws := range current.Workspaces {
			label := ws.DisplayName
			if label == "" {
				label = "(unnamed)"
			}
			fmt.Printf("  %-20s %s\n", label, ws.Path)
		}
		return nil
	}
	return cmd
}

func newSettingsDiscoverCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("discover <dir>", "Scan a directory tree for git repositories not yet configured as workspaces")
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		current, err := loadSettingsForCmd(cmd)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		found, err := settings.Discover(args[0])
		if err != nil {
			return fmt.Errorf("discover workspaces: %w", err)
		}

		merged := settings.MergeDiscovered(current.Workspaces, found)
		var fresh []settings.Workspace
		seen := make(map[string]bool, len(current.Workspaces))
		for _, ws := range current.Workspaces {
			seen[ws.Path] = true
		}
		for _, ws := range merged {
			if !seen[ws.Path] {
				fresh = append(fresh, ws)
			}
		}

		opts := cli.GetOptions(cmd)
		if opts.JSONOutput {
			out, err := json.MarshalIndent(fresh, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		if len(fresh) == 0 {
			fmt.Println("No new git repositories found.")
			return nil
		}
		for _, ws := range fresh {
			fmt.Printf("  %-20s %s\n", ws.DisplayName, ws.Path)
		}
		fmt.Printf("\n%d new repositories found. Add them to settings.yaml's workspaces list to use.\n", len(fresh))
		return nil
	}
	return cmd
}
