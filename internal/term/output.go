package term

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	xterm "golang.org/x/term"
)

// Printer writes styled lines. Styling is dropped when Color is false so
// piped output stays plain.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// NewPrinter styles output only when stdout is a terminal.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{Out: out, Err: errOut, Color: IsTerminal(out)}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.Color {
		return s
	}
	return style.Render(s)
}

// Println writes an unstyled line to Out.
func (p *Printer) Println(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Success writes a green line to Out.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Out, p.render(successStyle, fmt.Sprintf(format, args...)))
}

// Heading writes an underlined accent line to Out.
func (p *Printer) Heading(format string, args ...any) {
	fmt.Fprintln(p.Out, p.render(headingStyle, fmt.Sprintf(format, args...)))
}

// Dim writes a gray line to Out.
func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintln(p.Out, p.render(dimStyle, fmt.Sprintf(format, args...)))
}

// Warn writes an orange line to Err.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.Err, p.render(warnStyle, fmt.Sprintf(format, args...)))
}

// Error writes a red line to Err.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.Err, p.render(errorStyle, fmt.Sprintf(format, args...)))
}

// Name styles a command or file name for inline use.
func (p *Printer) Name(s string) string {
	return p.render(nameStyle, s)
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or fallback when it is unknown.
func Width(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := xterm.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
