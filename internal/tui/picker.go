// Package tui provides the interactive proompt picker.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Item is one pickable proompt.
type Item struct {
	Name          string
	Description   string
	Documentation bool
	Arguments     []string // flag summaries, e.g. "-i, --plan-path (required)"
	Template      string
}

// Model is the Bubble Tea model of the picker.
type Model struct {
	items    []Item
	visible  []int // indexes into items that match filter
	selected int   // index into visible
	filter   string
	preview  bool // render the template instead of the summary

	width  int
	height int

	chosen string
	md     markdownRenderer
}

// NewModel returns a picker over items.
func NewModel(items []Item) *Model {
	m := &Model{items: items}
	m.applyFilter()
	return m
}

// Chosen returns the selected module name, or "" when the user quit.
func (m *Model) Chosen() string { return m.chosen }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.chosen = ""
		return m, tea.Quit
	case tea.KeyEnter:
		if len(m.visible) > 0 {
			m.chosen = m.items[m.visible[m.selected]].Name
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyUp, tea.KeyCtrlP:
		if m.selected > 0 {
			m.selected--
		}
	case tea.KeyDown, tea.KeyCtrlN:
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case tea.KeyTab:
		m.preview = !m.preview
	case tea.KeyBackspace:
		if m.filter != "" {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeySpace:
		m.filter += " "
		m.applyFilter()
	case tea.KeyRunes:
		m.filter += string(msg.Runes)
		m.applyFilter()
	}
	return m, nil
}

// applyFilter keeps the items whose name or description contains every
// space-separated word of the filter, case-insensitively.
func (m *Model) applyFilter() {
	words := strings.Fields(strings.ToLower(m.filter))
	m.visible = m.visible[:0]
	for i, it := range m.items {
		hay := strings.ToLower(it.Name + " " + it.Description)
		match := true
		for _, w := range words {
			if !strings.Contains(hay, w) {
				match = false
				break
			}
		}
		if match {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(0, len(m.visible)-1)
	}
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := headerStyle.Width(m.width).Render("proompt: pick a proompt")
	listW := max(28, m.width/3)
	detailW := m.width - listW - 4
	bodyH := max(3, m.height-4)

	list := focusedBorder.Width(listW).Height(bodyH).Render(m.renderList(listW, bodyH))
	detail := unfocusedBorder.Width(max(10, detailW)).Height(bodyH).Render(m.renderDetail(max(10, detailW-2), bodyH))
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	status := statusBarStyle.Width(m.width).Render(
		fmt.Sprintf("filter: %s  %s select  %s preview  %s quit",
			m.filter+"_", statusKeyStyle.Render("enter"), statusKeyStyle.Render("tab"), statusKeyStyle.Render("esc")))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m *Model) renderList(w, h int) string {
	if len(m.visible) == 0 {
		return dimStyle.Render("No proompt matches.")
	}
	start := 0
	if m.selected >= h {
		start = m.selected - h + 1
	}
	end := min(len(m.visible), start+h)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name := padRight(ansi.Truncate(m.items[m.visible[i]].Name, w-2, "…"), w-2)
		if i == m.selected {
			lines = append(lines, selectedIndicator.Render("> ")+selectedStyle.Render(name))
			continue
		}
		lines = append(lines, "  "+name)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDetail(w, h int) string {
	if len(m.visible) == 0 {
		return ""
	}
	it := m.items[m.visible[m.selected]]

	if m.preview {
		if it.Template == "" {
			return dimStyle.Render("This command has no template.")
		}
		return clipLines(m.md.render(it.Template, w), h)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(it.Name))
	if it.Documentation {
		b.WriteString(" " + docStyle.Render("[documentation]"))
	}
	b.WriteString("\n\n")
	b.WriteString(wrap(it.Description, w))
	b.WriteString("\n")
	if len(it.Arguments) > 0 {
		b.WriteString("\n" + titleStyle.Render("Arguments") + "\n")
		for _, a := range it.Arguments {
			b.WriteString(wrap("  "+a, w) + "\n")
		}
	}
	return clipLines(b.String(), h)
}

func clipLines(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}

// Run shows the picker and returns the chosen module name, or "" if the
// user quit without choosing.
func Run(items []Item) (string, error) {
	m := NewModel(items)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	return m.Chosen(), nil
}
