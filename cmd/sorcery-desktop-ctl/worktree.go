package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/browserup/sorcery-desktop/cli"
	"github.com/browserup/sorcery-desktop/internal/gitrepo"
	"github.com/browserup/sorcery-desktop/internal/settings"
	"github.com/browserup/sorcery-desktop/pkg/paths"
	"github.com/browserup/sorcery-desktop/tui/theme"
)

var (
	worktreeHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Blue).MarginTop(1)
	worktreeBranchStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Cyan)
	worktreePathStyle   = lipgloss.NewStyle().Foreground(theme.MutedText)
)

func newWorktreeCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("worktree", "Manage git worktrees created by the protocol handler")
	cmd.AddCommand(newWorktreeListCmd())
	cmd.AddCommand(newWorktreeGCCmd())
	return cmd
}

// worktreeReport is one workspace's worktree listing, keyed by display
// name the same way settings.yaml keys a configured workspace.
type worktreeReport struct {
	Workspace string                `json:"workspace"`
	Worktrees []gitrepo.WorktreeInfo `json:"worktrees"`
}

func newWorktreeListCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("list", "Show git worktrees for every configured workspace")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		current, err := loadSettingsForCmd(cmd)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		ctx := context.Background()
		repo := gitrepo.New()

		var reports []worktreeReport
		for _, ws := range current.Workspaces {
			worktrees, err := repo.ListWorktrees(ctx, ws.Path)
			if err != nil {
				continue
			}
			if len(worktrees) <= 1 {
				continue
			}
			name := ws.DisplayName
			if name == "" {
				name = ws.Path
			}
			reports = append(reports, worktreeReport{Workspace: name, Worktrees: worktrees})
		}

		opts := cli.GetOptions(cmd)
		if opts.JSONOutput {
			out, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		if len(reports) == 0 {
			fmt.Println("No workspace has additional worktrees.")
			return nil
		}

		for _, r := range reports {
			fmt.Println(worktreeHeaderStyle.Render(r.Workspace))
			for _, wt := range r.Worktrees {
				branch := wt.Branch
				if branch == "" {
					branch = "(detached)"
				}
				fmt.Printf("  %s %s\n",
					worktreeBranchStyle.Render(fmt.Sprintf("%-20s", branch)),
					worktreePathStyle.Render(wt.Path),
				)
			}
		}
		return nil
	}
	return cmd
}

func newWorktreeGCCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("gc", "Prune stale git worktrees beyond the configured per-repo cap")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		current, err := loadSettingsForCmd(cmd)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		worktreeRoot := current.WorktreeRoot
		if worktreeRoot == "" {
			worktreeRoot = paths.WorktreeRoot()
		}

		ctx := context.Background()
		repo := gitrepo.New()

		var removedTotal int
		for _, ws := range current.Workspaces {
			base := filepath.Join(worktreeRoot, gitrepo.SafeName(workspaceLabel(ws)))
			removed, err := repo.GC(ctx, ws.Path, base, current.MaxWorktreesPerRepo)
			if err != nil {
				fmt.Printf("%s: %v\n", ws.Path, err)
				continue
			}
			for _, path := range removed {
				fmt.Printf("removed %s\n", path)
			}
			removedTotal += len(removed)
		}

		fmt.Printf("%d worktree(s) removed.\n", removedTotal)
		return nil
	}
	return cmd
}

func workspaceLabel(ws settings.Workspace) string {
	if ws.DisplayName != "" {
		return ws.DisplayName
	}
	return ws.Path
}
