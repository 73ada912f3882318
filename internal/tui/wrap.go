package tui

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// wrap soft-wraps every line of text at width visual columns. Continuation
// lines keep the leading indentation of the line they came from. Words wider
// than the available space are hard-broken.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]
	if runewidth.StringWidth(indent) >= width/2 {
		indent = ""
	}
	avail := width - runewidth.StringWidth(indent)

	var lines []string
	var cur strings.Builder
	curW := 0
	flush := func() {
		lines = append(lines, indent+cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range strings.Fields(trimmed) {
		ww := runewidth.StringWidth(word)
		for ww > avail {
			if curW > 0 {
				flush()
			}
			head := runewidth.Truncate(word, avail, "")
			lines = append(lines, indent+head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}
		if curW > 0 && curW+1+ww > avail {
			flush()
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		flush()
	}
	return lines
}

// padRight pads s with spaces to width visual columns.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
