package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testItems() []Item {
	return []Item{
		{Name: "config", Description: "Configure proompt settings"},
		{Name: "document-dir", Description: "Document one directory", Documentation: true, Arguments: []string{"--directory-path (required)"}, Template: "# Doc\n\nbody"},
		{Name: "lyra", Description: "Optimize prompts", Template: "You are Lyra"},
	}
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestPickerNavigateAndChoose(t *testing.T) {
	m := NewModel(testItems())
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown)) // clamps at the last item
	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if m.Chosen() != "lyra" {
		t.Fatalf("chosen = %q, want lyra", m.Chosen())
	}
}

func TestPickerFilter(t *testing.T) {
	m := NewModel(testItems())
	m.Update(runes("doc"))
	if len(m.visible) != 1 || m.items[m.visible[0]].Name != "document-dir" {
		t.Fatalf("visible after filter = %v", m.visible)
	}
	m.Update(runes("zzz"))
	if len(m.visible) != 0 {
		t.Fatalf("expected no matches, got %v", m.visible)
	}
	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil || m.Chosen() != "" {
		t.Fatal("enter with no matches must do nothing")
	}
	for i := 0; i < 3; i++ {
		m.Update(key(tea.KeyBackspace))
	}
	if m.filter != "doc" || len(m.visible) != 1 {
		t.Fatalf("filter = %q visible = %v", m.filter, m.visible)
	}
}

func TestPickerFilterWords(t *testing.T) {
	m := NewModel(testItems())
	m.Update(runes("optimize"))
	m.Update(key(tea.KeySpace))
	m.Update(runes("lyra"))
	if len(m.visible) != 1 || m.items[m.visible[0]].Name != "lyra" {
		t.Fatalf("visible = %v", m.visible)
	}
}

func TestPickerEscQuitsWithoutChoice(t *testing.T) {
	m := NewModel(testItems())
	_, cmd := m.Update(key(tea.KeyEsc))
	if cmd == nil || m.Chosen() != "" {
		t.Fatalf("esc should quit without a choice, chosen=%q", m.Chosen())
	}
}

func TestPickerView(t *testing.T) {
	m := NewModel(testItems())
	if m.View() != "Loading..." {
		t.Fatal("view before sizing should be a placeholder")
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m.Update(key(tea.KeyDown))
	view := m.View()
	for _, want := range []string{"config", "document-dir", "[documentation]", "--directory-path"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestWrap(t *testing.T) {
	got := wrap("  alpha beta gamma", 12)
	want := "  alpha beta\n  gamma"
	if got != want {
		t.Fatalf("wrap = %q, want %q", got, want)
	}
	if wrap("short", 0) != "short" {
		t.Fatal("non-positive width must not wrap")
	}
	for _, line := range strings.Split(wrap("abcdefghijklmnop", 5), "\n") {
		if len(line) > 5 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
	if padRight("ab", 4) != "ab  " {
		t.Fatalf("padRight = %q", padRight("ab", 4))
	}
}
