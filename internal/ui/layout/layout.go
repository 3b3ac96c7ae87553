// Package layout draws the frame around every screen: a bordered header,
// the content area and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// MaxContentWidth caps cards and question text on wide terminals.
const MaxContentWidth = 96

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var bar = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentWidth is the width of the centred content column, between 20 and
// MaxContentWidth.
func ContentWidth(width int) int {
	return min(max(width-4, 20), MaxContentWidth)
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return theme.Body.Align(lipgloss.Center).Width(width).Height(height).Render(msg)
}

// RenderHeader puts the product name on the left, title in the middle and
// status on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render("  AZ-104")
	mid := theme.Body.Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Secondary).Render(status)

	inner := max(width-4, 0)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gap1 := max((inner-mw)/2-lw, 1)
	gap2 := max(inner-lw-gap1-mw-rw, 1)

	return bar.Width(width).Render(left + strings.Repeat(" ", gap1) + mid + strings.Repeat(" ", gap2) + right)
}

func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := theme.Body.Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + theme.Dim.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Center places block in the middle of a width-wide column.
func Center(width int, block string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
