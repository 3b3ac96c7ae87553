// Package loading is shown while a question batch is generated.
package loading

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

// LoadingScreen waits for the generator. Esc abandons the request.
type LoadingScreen struct {
	ctrl *session.Controller
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.Hinter = (*LoadingScreen)(nil)

// New creates the loading screen.
func New(ctrl *session.Controller) *LoadingScreen {
	return &LoadingScreen{ctrl: ctrl}
}

func (s *LoadingScreen) Init() tea.Cmd {
	return nil
}

func (s *LoadingScreen) Title() string {
	return "Loading"
}

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		_ = s.ctrl.Navigate(back(s.ctrl))
	}
	return s, nil
}

// back is the setup screen the pending attempt came from.
func back(ctrl *session.Controller) session.Display {
	v, ok := ctrl.Attempt()
	switch {
	case !ok || v.Kind == quiz.KindDaily:
		return session.DisplayDashboard
	case v.Mode == quiz.ModeExam:
		return session.DisplayExamSetup
	default:
		return session.DisplayPracticeSetup
	}
}

func (s *LoadingScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	v, ok := s.ctrl.Attempt()
	if !ok {
		return b.String()
	}
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Generating %d questions…", v.Requested)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(v.Scope.Label()))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.Hint.Render("This usually takes a few seconds.")))
	return b.String()
}
