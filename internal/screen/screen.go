// Package screen defines the contract between the app shell and the
// individual quiz screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/ui/layout"
)

// Screen is one full-window view. The shell draws the header and footer;
// a screen renders only the area between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders into a width x height content area.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// Hinter is implemented by screens with their own footer key hints. Screens
// without it get the shell defaults.
type Hinter interface {
	KeyHints() []layout.KeyHint
}
