package api

import (
	"github.com/abhisek/az104/internal/account"
	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/syllabus"
)

type stateResponse struct {
	Display        string           `json:"display"`
	Message        string           `json:"message,omitempty"`
	User           *account.User    `json:"user,omitempty"`
	Stats          *stats.UserStats `json:"stats,omitempty"`
	Accuracy       *int             `json:"accuracy,omitempty"`
	DailyAvailable bool             `json:"dailyAvailable"`
	LastDaily      string           `json:"lastDaily,omitempty"`
	Attempt        *attemptView     `json:"attempt,omitempty"`

	// Accepted is set on submit responses.
	Accepted *bool `json:"accepted,omitempty"`
}

type attemptView struct {
	ID       string         `json:"id"`
	Mode     quiz.Mode      `json:"mode"`
	Kind     quiz.Kind      `json:"kind"`
	Scope    syllabus.Scope `json:"scope"`
	Label    string         `json:"label"`
	Phase    string         `json:"phase"`
	Index    int            `json:"index"`
	Total    int            `json:"total"`
	Answered int            `json:"answered"`

	// Score is withheld in exam mode until the results.
	Score *int `json:"score,omitempty"`

	// Remaining is the exam clock in seconds.
	Remaining *int `json:"remainingSeconds,omitempty"`

	Question *questionView `json:"question,omitempty"`
	Feedback *feedbackView `json:"feedback,omitempty"`
	Result   *resultView   `json:"result,omitempty"`
}

// questionView omits the answer.
type questionView struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

type feedbackView struct {
	Selected     int    `json:"selectedAnswerIndex"`
	Correct      bool   `json:"isCorrect"`
	CorrectIndex int    `json:"correctAnswerIndex"`
	Explanation  string `json:"explanation"`
}

type resultView struct {
	Score    int           `json:"score"`
	Total    int           `json:"total"`
	Percent  int           `json:"percent"`
	Feedback string        `json:"feedback"`
	TimedOut bool          `json:"timedOut"`
	Answers  []quiz.Answer `json:"answers"`
}

// snapshot must run on the loop goroutine.
func snapshot(c *session.Controller) stateResponse {
	st := stateResponse{
		Display:        string(c.Display()),
		Message:        c.Message(),
		DailyAvailable: c.DailyAvailable(),
	}
	if u, ok := c.User(); ok {
		st.User = &u
		s := c.Stats()
		st.Stats = &s
		if pct, ok := s.Accuracy(); ok {
			st.Accuracy = &pct
		}
		if last := c.LastDaily(); !last.IsZero() {
			st.LastDaily = last.String()
		}
	}
	if v, ok := c.Attempt(); ok {
		st.Attempt = attemptOf(v)
	}
	return st
}

func attemptOf(v session.AttemptView) *attemptView {
	out := &attemptView{
		ID:       v.ID,
		Mode:     v.Mode,
		Kind:     v.Kind,
		Scope:    v.Scope,
		Label:    v.Scope.Label(),
		Phase:    v.Phase.String(),
		Index:    v.Index,
		Total:    v.Total,
		Answered: v.Answered,
	}
	if v.Mode == quiz.ModePractice {
		score := v.Score
		out.Score = &score
	}
	if v.TimerActive {
		rem := v.Remaining
		out.Remaining = &rem
	}
	if v.Question != nil {
		out.Question = &questionView{Text: v.Question.Text, Options: v.Question.Options}
	}
	if v.Feedback != nil {
		out.Feedback = &feedbackView{
			Selected:     v.Feedback.Selected,
			Correct:      v.Feedback.Correct,
			CorrectIndex: v.Feedback.Question.CorrectIndex,
			Explanation:  v.Feedback.Question.Explanation,
		}
	}
	if r := v.Result; r != nil {
		pct := r.Percent()
		out.Result = &resultView{
			Score:    r.Score,
			Total:    r.Total,
			Percent:  pct,
			Feedback: stats.BandFor(pct).Feedback(),
			TimedOut: r.TimedOut,
			Answers:  r.Answers,
		}
	}
	return out
}
