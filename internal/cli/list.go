package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/fsmiamoto/proompt/internal/term"
)

const listNameWidth = 20

// printList prints one line per module. Descriptions are truncated to the
// terminal width when stdout is a terminal.
func printList(app *App) {
	p := app.printer()
	width := 0
	if term.IsTerminal(app.Stdout) {
		width = term.Width(app.Stdout, 0)
	}

	fmt.Fprintln(app.Stdout, "Available proompts:")
	for _, m := range app.Registry.All() {
		name := runewidth.FillRight(m.Name, listNameWidth)
		desc := m.Description
		if avail := width - listNameWidth - 5; width > 0 && avail > 10 {
			desc = ansi.Truncate(desc, avail, "…")
		}
		fmt.Fprintf(app.Stdout, "  %s → %s\n", p.Name(name), desc)
	}
}
