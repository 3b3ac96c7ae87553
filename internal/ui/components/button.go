package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/ui/theme"
)

// Button runs OnPress when enter is pressed while it has focus.
type Button struct {
	Label   string
	Focused bool
	OnPress func() tea.Cmd
}

func NewButton(label string, focused bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Focused: focused, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Focused || b.OnPress == nil || k.Code != tea.KeyEnter {
		return b, nil
	}
	return b, b.OnPress()
}

func (b Button) View() string {
	if !b.Focused {
		return theme.ButtonInactive.Render(b.Label)
	}
	return theme.ButtonActive.Render("▸ " + b.Label)
}
