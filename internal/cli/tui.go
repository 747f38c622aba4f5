package cli

import (
	"fmt"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// HeaderListModel - Interactive header selection
// =============================================================================

// HeaderListModel is the bubbletea model for picking one header out of the
// matches of an ambiguous pattern.
type HeaderListModel struct {
	Title    string
	Headers  []string
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewHeaderListModel creates a new header list model.
func NewHeaderListModel(title string, headers []string) HeaderListModel {
	return HeaderListModel{
		Title:   title,
		Headers: headers,
		Height:  15,
	}
}

func (m HeaderListModel) Init() tea.Cmd {
	return nil
}

func (m HeaderListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Headers)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Headers) > 0 {
				m.Selected = m.Headers[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m HeaderListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Headers))
	for i := m.Offset; i < end; i++ {
		h := m.Headers[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-28s %s", cursor, path.Base(h), listDimStyle.Render(path.Dir(h)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Headers))))
	return b.String()
}

// pickHeader runs the interactive list and returns the chosen header, or ""
// when the user quit.
func pickHeader(title string, headers []string) (string, error) {
	final, err := tea.NewProgram(NewHeaderListModel(title, headers)).Run()
	if err != nil {
		return "", fmt.Errorf("header picker: %w", err)
	}
	return final.(HeaderListModel).Selected, nil
}
