// Package profile shows the signed-in identity and lifetime statistics.
package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/ui/components"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

// ProfileScreen is the account page.
type ProfileScreen struct {
	ctrl *session.Controller
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.Hinter = (*ProfileScreen)(nil)

// New creates the account screen.
func New(ctrl *session.Controller) *ProfileScreen {
	return &ProfileScreen{ctrl: ctrl}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (s *ProfileScreen) Title() string {
	return "Account"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "L", Description: "Log out"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "l", "L":
			s.ctrl.Logout(context.Background())
		case "esc", "enter":
			_ = s.ctrl.Navigate(session.DisplayDashboard)
		}
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	u, _ := s.ctrl.User()
	st := s.ctrl.Stats()

	last := "never"
	if d := s.ctrl.LastDaily(); !d.IsZero() {
		last = d.String()
	}
	accuracy := theme.Dim.Render("n/a")
	if pct, ok := st.Accuracy(); ok {
		accuracy = theme.Performance(pct).Render(fmt.Sprintf("%d%%", pct))
	}

	rows := [][2]string{
		{"Name", u.Name},
		{"E-mail", u.Email},
		{"Questions answered", fmt.Sprint(st.TotalAnswered)},
		{"Correct answers", fmt.Sprint(st.TotalCorrect)},
		{"Accuracy", accuracy},
		{"Last daily challenge", last},
	}

	var body strings.Builder
	for i, r := range rows {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(theme.Dim.Render(fmt.Sprintf("%-22s", r[0])))
		body.WriteString(theme.Body.Render(r[1]))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Account"))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, components.Card(body.String(), min(layout.ContentWidth(width), 64))))
	return b.String()
}
