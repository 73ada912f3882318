package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer caches one glamour renderer per wrap width.
type markdownRenderer struct {
	width int
	r     *glamour.TermRenderer
}

// render renders text wrapped at width. Falls back to plain text on error.
func (mr *markdownRenderer) render(text string, width int) string {
	if text == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if mr.r == nil || mr.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		mr.r, mr.width = r, width
	}
	out, err := mr.r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
