package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/ui/theme"
)

// ProgressBar is a one-line gauge made of coloured cells.
type ProgressBar struct {
	Label   string
	Percent float64 // 0..1, clamped when drawn
	Width   int     // total width including label and percentage

	ShowPercent bool

	// Fill overrides the colour of the filled cells.
	Fill color.Color
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	ratio := min(max(p.Percent, 0), 1)

	var prefix, suffix string
	if p.Label != "" {
		prefix = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = theme.Dim.Render(fmt.Sprintf("%5d%%", int(ratio*100)))
	}

	cells := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	filled := int(float64(cells) * ratio)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled))
	return prefix + bar + suffix
}
