// Package login is the sign-in screen. Any name and e-mail are accepted.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/account"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/ui/components"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

// LoginScreen collects a display name and an e-mail address.
type LoginScreen struct {
	ctrl   *session.Controller
	inputs []components.TextInput
	focus  int
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.Hinter = (*LoginScreen)(nil)

// New creates the login screen with the name field focused.
func New(ctrl *session.Controller) *LoginScreen {
	return &LoginScreen{
		ctrl: ctrl,
		inputs: []components.TextInput{
			components.NewTextInput("Name", account.DefaultName, 64),
			components.NewTextInput("E-mail", account.DefaultEmail, 128),
		},
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.inputs[s.focus].Focus()
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % len(s.inputs))
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + len(s.inputs) - 1) % len(s.inputs))
		case "enter":
			s.ctrl.Login(context.Background(), account.Credentials{
				Name:  strings.TrimSpace(s.inputs[0].Value()),
				Email: strings.TrimSpace(s.inputs[1].Value()),
			})
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[s.focus].Focus()
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(layout.Center(width, renderBanner(width)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Microsoft Azure Administrator exam practice"))
	b.WriteString("\n\n")

	var form strings.Builder
	for i, in := range s.inputs {
		if i > 0 {
			form.WriteString("\n\n")
		}
		form.WriteString(in.View())
	}
	form.WriteString("\n\n")
	form.WriteString(theme.Hint.Render("Any name and e-mail will do. Leave blank for defaults."))

	b.WriteString(layout.Center(width, components.Card(form.String(), min(layout.ContentWidth(width), 60))))
	return b.String()
}
