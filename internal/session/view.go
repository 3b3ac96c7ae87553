package session

import (
	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/syllabus"
)

// AttemptView is a read-only snapshot of the running attempt.
type AttemptView struct {
	ID        string
	Mode      quiz.Mode
	Kind      quiz.Kind
	Scope     syllabus.Scope
	Phase     quiz.Phase
	Requested int

	Index    int
	Total    int
	Score    int
	Answered int

	// Question is the question on screen while in progress.
	Question *quiz.Question

	// Feedback is the answer being shown in practice mode before advancing.
	Feedback *quiz.Answer

	Remaining   int
	TimerActive bool

	// Result is set once the attempt has completed.
	Result *quiz.Result
}

func viewOf(a *quiz.Attempt) AttemptView {
	v := AttemptView{
		ID:          a.ID(),
		Mode:        a.Mode(),
		Kind:        a.Kind(),
		Scope:       a.Scope(),
		Phase:       a.Phase(),
		Requested:   a.Requested(),
		Index:       a.Index(),
		Total:       a.Total(),
		Score:       a.Score(),
		Answered:    a.Answered(),
		Remaining:   a.Remaining(),
		TimerActive: a.TimerActive(),
	}
	if q, ok := a.Current(); ok {
		v.Question = &q
	}
	if a.AwaitingAdvance() {
		if ans, ok := a.LastAnswer(); ok {
			v.Feedback = &ans
		}
	}
	if r, ok := a.Result(); ok {
		v.Result = &r
	}
	return v
}
