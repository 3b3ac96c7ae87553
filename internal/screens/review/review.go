// Package review is a scrollable list of the answers from one attempt.
package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/router"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

// ReviewScreen lists each question with the chosen and correct answers.
type ReviewScreen struct {
	answers []quiz.Answer
	offset  int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.Hinter = (*ReviewScreen)(nil)

// New creates a review of answers.
func New(answers []quiz.Answer) *ReviewScreen {
	return &ReviewScreen{answers: answers}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Answer Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Offset returns the first visible line.
func (s *ReviewScreen) Offset() int { return s.offset }

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "pgdown", " ", "space":
		s.offset += 10
	case "home", "g":
		s.offset = 0
	case "enter", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	lines := strings.Split(s.render(cw), "\n")

	maxOffset := max(len(lines)-height, 0)
	s.offset = min(s.offset, maxOffset)
	end := min(s.offset+height, len(lines))
	return layout.Center(width, strings.Join(lines[s.offset:end], "\n"))
}

func (s *ReviewScreen) render(cw int) string {
	wrap := lipgloss.NewStyle().Width(cw)
	var b strings.Builder
	for i, a := range s.answers {
		if i > 0 {
			b.WriteString("\n\n")
		}
		mark := theme.Correct.Render("✓")
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(wrap.Render(fmt.Sprintf("%s %s", mark, theme.Heading.Render(fmt.Sprintf("%d. %s", i+1, a.Question.Text)))))
		b.WriteString("\n")
		b.WriteString(wrap.Render(theme.Dim.Render("Your answer:    ") + answerStyle(a.Correct).Render(a.SelectedOption())))
		if !a.Correct {
			b.WriteString("\n")
			b.WriteString(wrap.Render(theme.Dim.Render("Correct answer: ") + theme.Correct.Render(a.Question.CorrectOption())))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Foreground(theme.TextDim).Render(a.Question.Explanation))
	}
	return b.String()
}

func answerStyle(correct bool) lipgloss.Style {
	if correct {
		return theme.Correct
	}
	return theme.Incorrect
}
