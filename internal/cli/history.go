package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fsmiamoto/proompt/internal/runstore"
	"github.com/fsmiamoto/proompt/internal/term"
)

func newHistoryCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded proompt runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := runstore.List(app.Env.RunsRoot)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(app.Stdout, "No runs recorded yet.")
				return nil
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}
			renderHistory(app, runs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show (0 for all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run and its prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := runstore.Load(app.Env.RunsRoot, args[0])
			if err != nil {
				return err
			}
			showRun(app, saved)
			return nil
		},
	})
	return cmd
}

func renderHistory(app *App, runs []runstore.Meta) {
	table := tablewriter.NewWriter(app.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Command", "LLM", "Status", "Started", "Duration"})

	for _, r := range runs {
		table.Append([]string{
			shortID(r.RunID),
			r.Command,
			r.LLMCli,
			r.Status,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			formatDuration(r.Duration()),
		})
	}
	table.Render()
}

func showRun(app *App, saved *runstore.Saved) {
	p := app.printer()
	m := saved.Meta

	p.Heading("Run %s", m.RunID)
	p.Println("  Command:       %s", m.Command)
	p.Println("  LLM CLI:       %s", m.LLMCli)
	p.Println("  Output format: %s", strings.Join(m.OutputFormat, ", "))
	p.Println("  Status:        %s", m.Status)
	if m.ExitCode != 0 {
		p.Println("  Exit code:     %d", m.ExitCode)
	}
	if m.Error != "" {
		p.Println("  Error:         %s", m.Error)
	}
	p.Println("  Started:       %s", m.StartedAt.Local().Format(time.RFC1123))
	if d := m.Duration(); d > 0 {
		p.Println("  Duration:      %s", formatDuration(d))
	}
	p.Println("  Directory:     %s", m.WorkDir)
	if m.SnapshotPath != "" {
		p.Println("  Snapshot:      %s", m.SnapshotPath)
	}
	p.Println("")

	if saved.Prompt == "" {
		p.Dim("No prompt recorded.")
		return
	}
	text := saved.Prompt
	if p.Color {
		text = term.RenderMarkdown(text, term.Width(app.Stdout, 100))
	}
	p.Println("%s", text)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}
