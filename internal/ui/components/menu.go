package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label  string
	Detail string // dimmed, after the label

	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list navigated with the arrow keys or j/k. Disabled
// items are drawn but never selected.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move selects the next enabled item in direction dir, if any.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if it, ok := m.Current(); ok && !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

// Current returns the selected item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		style, marker := theme.Body, "    "
		switch {
		case it.Disabled:
			style = theme.Dim
		case i == m.Selected:
			style, marker = theme.Selected, "  ▸ "
		}
		b.WriteString(style.Render(marker + it.Label))
		if it.Detail != "" {
			b.WriteString("  " + theme.Dim.Render(it.Detail))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
