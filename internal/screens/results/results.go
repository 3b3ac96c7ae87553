// Package results shows the outcome of a completed attempt.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/router"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/screens/review"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/ui/components"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

// ResultsScreen displays the score and opens the answer review.
type ResultsScreen struct {
	ctrl   *session.Controller
	result *quiz.Result
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.Hinter = (*ResultsScreen)(nil)

// New creates the results screen for the controller's completed attempt.
func New(ctrl *session.Controller) *ResultsScreen {
	s := &ResultsScreen{ctrl: ctrl}
	if v, ok := ctrl.Attempt(); ok {
		s.result = v.Result
	}
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	if s.result != nil && s.result.Mode == quiz.ModeExam {
		return "Exam Results"
	}
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Review answers"},
		{Key: "Enter", Description: "Dashboard"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		_ = s.ctrl.Navigate(session.DisplayDashboard)
	case "r", "R":
		if s.result != nil && len(s.result.Answers) > 0 {
			answers := s.result.Answers
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: review.New(answers)}
			}
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	r := s.result
	if r == nil {
		return ""
	}
	cw := min(layout.ContentWidth(width), 70)
	pct := r.Percent()

	var b strings.Builder
	b.WriteString("\n")
	heading := "Quiz Complete!"
	if r.Mode == quiz.ModeExam {
		heading = "Exam Complete!"
	}
	b.WriteString(theme.Title.Width(width).Render(heading))
	b.WriteString("\n\n")

	var body strings.Builder
	body.WriteString(theme.Performance(pct).Render(fmt.Sprintf("%d / %d  (%d%%)", r.Score, r.Total, pct)))
	body.WriteString("\n\n")
	body.WriteString(theme.Body.Render(stats.BandFor(pct).Feedback()))
	if r.TimedOut {
		body.WriteString("\n\n")
		body.WriteString(theme.Notice.Render(fmt.Sprintf("Time's up! %d question(s) were left unanswered.", r.Unanswered())))
	}
	body.WriteString("\n\n")
	body.WriteString(theme.Dim.Render(fmt.Sprintf("%s · %s · took %s",
		r.Scope.Label(), r.Kind, quiz.FormatClock(int(r.Duration().Seconds())))))

	b.WriteString(layout.Center(width, components.Card(body.String(), cw)))
	return b.String()
}
