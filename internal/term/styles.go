// Package term holds everything that writes for a human at a terminal:
// styled status lines, the packing spinner and markdown rendering.
package term

import "github.com/charmbracelet/lipgloss"

var (
	ColorAccent = lipgloss.Color("69")  // blue
	colorOK     = lipgloss.Color("114") // soft green
	colorWarn   = lipgloss.Color("214") // orange
	colorError  = lipgloss.Color("196") // red
	colorDim    = lipgloss.Color("242") // gray
)

var (
	successStyle = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	nameStyle    = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Underline(true)
)
