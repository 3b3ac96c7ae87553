package login

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/ui/theme"
)

const bannerArt = `
  █████╗ ███████╗       ██╗ ██████╗ ██╗  ██╗
 ██╔══██╗╚══███╔╝      ███║██╔═████╗██║  ██║
 ███████║  ███╔╝ █████╗╚██║██║██╔██║███████║
 ██╔══██║ ███╔╝  ╚════╝ ██║████╔╝██║╚════██║
 ██║  ██║███████╗       ██║╚██████╔╝     ██║
 ╚═╝  ╚═╝╚══════╝       ╚═╝ ╚═════╝      ╚═╝`

const bannerCompact = "A Z - 1 0 4"

// renderBanner returns the product banner, or a compact fallback for
// terminals narrower than 52 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
