package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/browserup/sorcery-desktop/cli"
	"github.com/browserup/sorcery-desktop/internal/mru"
	"github.com/browserup/sorcery-desktop/pkg/paths"
	"github.com/browserup/sorcery-desktop/tui"
)

type mruRow struct {
	Workspace  string    `json:"workspace"`
	LastActive time.Time `json:"last_active"`
}

func newMRUCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("mru", "Inspect workspace activity tracking")
	cmd.AddCommand(newMRUShowCmd())
	return cmd
}

func newMRUShowCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("show", "List workspaces by most-recently-active")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		store := mru.NewStore(paths.MRUPath())
		store.Load()

		all := store.All()
		rows := make([]mruRow, 0, len(all))
		for ws, t := range all {
			rows = append(rows, mruRow{Workspace: ws, LastActive: t})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].LastActive.After(rows[j].LastActive) })

		opts := cli.GetOptions(cmd)
		if opts.JSONOutput {
			out, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		if len(rows) == 0 {
			fmt.Println("No workspace activity recorded yet.")
			return nil
		}

		if isatty.IsTerminal(os.Stdout.Fd()) {
			return runMRUTable(rows)
		}
		return printMRUText(rows)
	}
	return cmd
}

func printMRUText(rows []mruRow) error {
	for _, r := range rows {
		fmt.Printf("%-30s %s\n", r.Workspace, r.LastActive.Format(time.RFC3339))
	}
	return nil
}

// mruModel renders the MRU list as a bubbles table when attached to a
// terminal, matching the original source's interactive-with-text-fallback
// pattern for its workspace browser.
type mruModel struct {
	table table.Model
}

func (m mruModel) Init() tea.Cmd { return nil }

func (m mruModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m mruModel) View() string {
	return m.table.View() + "\n(press q to exit)\n"
}

func runMRUTable(rows []mruRow) error {
	tui.InitializeTUI()

	columns := []table.Column{
		{Title: "Workspace", Width: 30},
		{Title: "Last Active", Width: 25},
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row{r.Workspace, r.LastActive.Format(time.RFC3339)})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(trows),
		table.WithFocused(true),
		table.WithHeight(min(len(trows)+1, 20)),
	)

	_, err := tea.NewProgram(mruModel{table: t}).Run()
	return err
}
