// Package examsetup picks the exam length before a timed attempt.
package examsetup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/syllabus"
	"github.com/abhisek/az104/internal/ui/components"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

// ExamSetupScreen adjusts the number of exam questions.
type ExamSetupScreen struct {
	ctrl   *session.Controller
	length int
	start  components.Button
}

var _ screen.Screen = (*ExamSetupScreen)(nil)
var _ screen.Hinter = (*ExamSetupScreen)(nil)

// New creates the exam setup screen at the shortest length.
func New(ctrl *session.Controller) *ExamSetupScreen {
	s := &ExamSetupScreen{ctrl: ctrl, length: syllabus.ExamMin}
	s.start = components.NewButton("Start Exam", true, func() tea.Cmd {
		return screen.Start(session.StartRequest{Mode: quiz.ModeExam, Kind: quiz.KindQuick, Count: s.length})
	})
	return s
}

func (s *ExamSetupScreen) Init() tea.Cmd {
	return nil
}

func (s *ExamSetupScreen) Title() string {
	return "Exam"
}

func (s *ExamSetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Questions"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

// Length returns the selected number of questions.
func (s *ExamSetupScreen) Length() int { return s.length }

func (s *ExamSetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "left", "h", "-":
			s.length = syllabus.StepExamLength(s.length, -1)
			return s, nil
		case "right", "l", "+":
			s.length = syllabus.StepExamLength(s.length, 1)
			return s, nil
		case "esc":
			_ = s.ctrl.Navigate(session.DisplayDashboard)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.start, cmd = s.start.Update(msg)
	return s, cmd
}

func (s *ExamSetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Exam Simulation"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Timed questions across all topics. Results are shown at the end."))
	b.WriteString("\n\n")

	if msg := s.ctrl.Message(); msg != "" {
		b.WriteString(layout.Center(width, theme.Notice.Render(msg)))
		b.WriteString("\n\n")
	}

	left, right := "◀", "▶"
	if s.length == syllabus.ExamMin {
		left = " "
	}
	if s.length == syllabus.ExamMax {
		right = " "
	}
	picker := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).
		Render(fmt.Sprintf("%s  %d questions  %s", left, s.length, right))
	limit := theme.Dim.Render(fmt.Sprintf("Time limit: %d minutes (%d seconds per question)",
		s.length*syllabus.SecondsPerQuestion/60, syllabus.SecondsPerQuestion))

	body := layout.Center(40, picker) + "\n\n" + layout.Center(40, limit) + "\n\n" + layout.Center(40, s.start.View())
	b.WriteString(layout.Center(width, components.Card(body, min(layout.ContentWidth(width), 64))))
	return b.String()
}
