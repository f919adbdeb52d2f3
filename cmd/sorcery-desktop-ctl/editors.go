package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/browserup/sorcery-desktop/cli"
	"github.com/browserup/sorcery-desktop/internal/editors"
	"github.com/browserup/sorcery-desktop/tui/components/table"
)

type editorStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
}

func newEditorsCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("editors", "Inspect the registered editors and their installation status")
	cmd.AddCommand(newEditorsListCmd())
	return cmd
}

func newEditorsListCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("list", "List every registered editor and whether it's installed")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		current, err := loadSettingsForCmd(cmd)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		registry := editors.NewDefaultRegistry()
		registry.ApplyPreferredTerminal(current.PreferredTerminal)

		ctx := context.Background()
		ids := registry.List()
		sort.Strings(ids)

		statuses := make([]editorStatus, 0, len(ids))
		for _, id := range ids {
			m, ok := registry.Get(id)
			if !ok {
				continue
			}
			statuses = append(statuses, editorStatus{
				ID:        id,
				Name:      m.DisplayName(),
				Installed: m.IsInstalled(ctx),
			})
		}

		opts := cli.GetOptions(cmd)
		if opts.JSONOutput {
			out, err := json.MarshalIndent(statuses, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		rows := make([][]string, 0, len(statuses))
		for _, s := range statuses {
			mark := "no"
			if s.Installed {
				mark = "yes"
			}
			rows = append(rows, []string{s.ID, s.Name, mark})
		}
		fmt.Println(table.SimpleTable([]string{"ID", "Name", "Installed"}, rows))
		return nil
	}
	return cmd
}
