package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/ui/theme"
)

// Card wraps content in a rounded-border box cw columns wide.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// TitledCard is a Card with a heading line.
func TitledCard(title, content string, cw int) string {
	return Card(theme.Heading.Render(title)+"\n\n"+content, cw)
}

// Section renders a dim, full-width rule with a label, used to separate
// blocks inside a screen.
func Section(label string, width int) string {
	rule := lipgloss.NewStyle().Foreground(theme.Border)
	text := " " + label + " "
	side := max((width-lipgloss.Width(text))/2, 1)
	return rule.Render(strings.Repeat("─", side)) + theme.Dim.Render(text) + rule.Render(strings.Repeat("─", side))
}

