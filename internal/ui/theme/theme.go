// Package theme holds the Azure-flavoured palette and the shared lipgloss
// styles of the terminal UI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/stats"
)

var (
	Primary   = lipgloss.Color("#0078D4") // azure
	Secondary = lipgloss.Color("#50E6FF")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")

	Green  = lipgloss.Color("#22C55E")
	Yellow = lipgloss.Color("#EAB308")
	Red    = lipgloss.Color("#EF4444")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Heading  = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Dim      = lipgloss.NewStyle().Foreground(TextDim)
	Hint     = Dim.Italic(true)
	Notice   = lipgloss.NewStyle().Bold(true).Foreground(Yellow)

	Card = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(1, 2)

	Selected   = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Unselected = Body
	Correct    = lipgloss.NewStyle().Bold(true).Foreground(Green)
	Incorrect  = lipgloss.NewStyle().Bold(true).Foreground(Red)

	ButtonActive   = lipgloss.NewStyle().Bold(true).Foreground(Text).Background(Primary).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)
)

var bandColors = map[stats.Band]color.Color{
	stats.BandExcellent: Green,
	stats.BandFair:      Yellow,
}

// Performance styles an accuracy percentage by its band.
func Performance(pct int) lipgloss.Style {
	c, ok := bandColors[stats.BandFor(pct)]
	if !ok {
		c = Red
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
