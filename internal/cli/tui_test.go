package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m HeaderListModel, keys ...string) (HeaderListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(HeaderListModel)
	}
	return m, cmd
}

func TestHeaderListModel_Navigation(t *testing.T) {
	headers := []string{"src/a.h", "src/b.h", "include/c.h"}

	tests := []struct {
		name       string
		keys       []string
		wantCursor int
	}{
		{"down", []string{"down"}, 1},
		{"vim keys", []string{"j", "j", "k"}, 1},
		{"clamped at end", []string{"down", "down", "down", "down"}, 2},
		{"clamped at start", []string{"up"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(NewHeaderListModel("pick", headers), tt.keys...)
			if m.Cursor != tt.wantCursor {
				t.Errorf("Cursor = %d, want %d", m.Cursor, tt.wantCursor)
			}
		})
	}
}

func TestHeaderListModel_Select(t *testing.T) {
	headers := []string{"src/a.h", "src/b.h"}

	m, cmd := press(NewHeaderListModel("pick", headers), "down", "enter")
	if m.Selected != "src/b.h" {
		t.Errorf("Selected = %q, want src/b.h", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}

	m, cmd = press(NewHeaderListModel("pick", headers), "q")
	if m.Selected != "" {
		t.Errorf("Selected after quit = %q, want empty", m.Selected)
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestHeaderListModel_Scroll(t *testing.T) {
	headers := []string{"a.h", "b.h", "c.h", "d.h", "e.h", "f.h", "g.h"}
	m := NewHeaderListModel("pick", headers)
	m.Height = 3

	m, _ = press(m, "down", "down", "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	view := m.View()
	if strings.Contains(view, "a.h") || !strings.Contains(view, "e.h") {
		t.Errorf("View() shows wrong window:\n%s", view)
	}
	if !strings.Contains(view, "[5/7]") {
		t.Errorf("View() missing position indicator:\n%s", view)
	}
}
