package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorAccent = lipgloss.Color("69")  // blue, primary accent
	colorDim    = lipgloss.Color("242") // gray
	colorBright = lipgloss.Color("255") // white
	colorDoc    = lipgloss.Color("114") // soft green
)

// Pane border styles.
var (
	focusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent)

	unfocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)
)

var headerStyle = lipgloss.NewStyle().
	Background(ColorAccent).
	Foreground(colorBright).
	Bold(true).
	Padding(0, 1)

// Selection styles.
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(colorBright).
			Bold(true)

	selectedIndicator = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)

// Status bar styles.
var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	docStyle = lipgloss.NewStyle().Foreground(colorDoc)
)
