package review

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/router"
)

func answers(n int) []quiz.Answer {
	out := make([]quiz.Answer, n)
	for i := range out {
		out[i] = quiz.Answer{
			Question: quiz.Question{
				Text:         fmt.Sprintf("Question %d about VNets?", i+1),
				Options:      []string{"A", "B", "C", "D"},
				CorrectIndex: 0,
				Explanation:  "Peering is non-transitive.",
			},
			Selected: i % 2,
			Correct:  i%2 == 0,
		}
	}
	return out
}

func TestScrollClampsToContent(t *testing.T) {
	s := New(answers(3))

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.Offset() != 0 {
		t.Fatalf("offset = %d after scrolling up at top", s.Offset())
	}

	for range 50 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.View(100, 5)
	total := strings.Count(s.render(96), "\n") + 1
	if want := total - 5; s.Offset() != want {
		t.Errorf("offset = %d, want %d", s.Offset(), want)
	}

	s.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	if s.Offset() != 0 {
		t.Errorf("offset = %d after home", s.Offset())
	}
}

func TestViewShowsCorrectAnswerForMisses(t *testing.T) {
	s := New(answers(2))
	v := s.View(100, 100)
	if !strings.Contains(v, "Question 2 about VNets?") {
		t.Error("missing second question")
	}
	if strings.Count(v, "Correct answer:") != 1 {
		t.Errorf("want one correct-answer line, got %d", strings.Count(v, "Correct answer:"))
	}
}

func TestEnterPops(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}
