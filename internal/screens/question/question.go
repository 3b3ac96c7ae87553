// Package question runs an attempt one question at a time.
package question

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/ui/components"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

// lowTime is the remaining exam time below which the clock turns red.
const lowTime = 60

// QuestionScreen shows the current question, practice feedback and the
// exam clock.
type QuestionScreen struct {
	ctrl    *session.Controller
	choice  components.MultiChoice
	id      string
	index   int
	confirm bool
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.Hinter = (*QuestionScreen)(nil)

// New creates the question screen for the controller's current attempt.
func New(ctrl *session.Controller) *QuestionScreen {
	s := &QuestionScreen{ctrl: ctrl, index: -1}
	s.refresh()
	return s
}

func (s *QuestionScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionScreen) Title() string {
	v, ok := s.ctrl.Attempt()
	if ok && v.Mode == quiz.ModeExam {
		return "Exam"
	}
	return "Practice"
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	v, _ := s.ctrl.Attempt()
	switch {
	case s.confirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case v.Feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-4", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// refresh rebuilds the option list when the attempt has moved to another
// question.
func (s *QuestionScreen) refresh() {
	v, ok := s.ctrl.Attempt()
	if !ok || v.Question == nil {
		return
	}
	if v.ID == s.id && v.Index == s.index {
		return
	}
	s.id, s.index = v.ID, v.Index
	s.choice = components.NewMultiChoice(v.Question.Options)
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.FeedbackDoneMsg:
		v, ok := s.ctrl.Attempt()
		if ok && v.Feedback != nil && v.ID == msg.AttemptID && v.Index == msg.Index {
			s.advance()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirm {
		switch key {
		case "y", "Y":
			s.confirm = false
			_ = s.ctrl.Navigate(session.DisplayDashboard)
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	v, ok := s.ctrl.Attempt()
	if !ok {
		return s, nil
	}

	// Practice feedback: any key moves on.
	if v.Feedback != nil {
		s.advance()
		return s, nil
	}

	if key == "esc" {
		s.confirm = true
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Submitted {
		return s, nil
	}

	out, err := s.ctrl.Submit(s.choice.ChosenIndex)
	if err != nil {
		s.choice.Reset()
		return s, nil
	}
	if v.Mode == quiz.ModePractice {
		s.choice.Reveal(out.Answer.Question.CorrectIndex, out.Answer.Selected)
		return s, screen.FeedbackDone(v.ID, v.Index)
	}
	s.refresh()
	return s, nil
}

func (s *QuestionScreen) advance() {
	if _, err := s.ctrl.Advance(); err == nil {
		s.refresh()
	}
}

func (s *QuestionScreen) View(width, height int) string {
	v, ok := s.ctrl.Attempt()
	if !ok || v.Question == nil {
		return ""
	}
	cw := layout.ContentWidth(width)

	if s.confirm {
		return "\n\n" + layout.Center(width, components.Card(
			theme.Notice.Render("Abandon this quiz?")+"\n\n"+
				theme.Dim.Render("Answers so far stay in your stats. Y to abandon, N to keep going."), min(cw, 60)))
	}

	var b strings.Builder
	b.WriteString(layout.Center(width, s.statusLine(v, cw)))
	b.WriteString("\n")
	progress := float64(v.Index) / float64(max(v.Total, 1))
	b.WriteString(layout.Center(width, components.NewProgressBar("", progress, false, cw).View()))
	b.WriteString("\n\n")

	q := lipgloss.NewStyle().Width(cw).Bold(true).Foreground(theme.Text).Render(v.Question.Text)
	b.WriteString(layout.Center(width, q))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Width(cw).Render(s.choice.View(cw))))

	if v.Feedback != nil {
		b.WriteString("\n")
		b.WriteString(layout.Center(width, renderFeedback(*v.Feedback, cw)))
	}
	return b.String()
}

func (s *QuestionScreen) statusLine(v session.AttemptView, cw int) string {
	left := theme.Heading.Render(fmt.Sprintf("Question %d of %d", v.Index+1, v.Total))

	var right string
	switch {
	case v.TimerActive:
		clock := theme.Body.Bold(true)
		if v.Remaining < lowTime {
			clock = theme.Incorrect
		}
		right = clock.Render("⏱ " + quiz.FormatClock(v.Remaining))
	case v.Mode == quiz.ModePractice:
		right = theme.Dim.Render(fmt.Sprintf("Score %d/%d", v.Score, v.Answered))
	}

	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func renderFeedback(a quiz.Answer, cw int) string {
	verdict := theme.Correct.Render("✓ Correct!")
	if !a.Correct {
		verdict = theme.Incorrect.Render("✗ Incorrect.") +
			theme.Body.Render(" The correct answer is "+a.Question.CorrectOption()+".")
	}
	explanation := lipgloss.NewStyle().Width(cw - 6).Foreground(theme.TextDim).Render(a.Question.Explanation)
	return components.Card(verdict+"\n\n"+explanation, cw)
}
