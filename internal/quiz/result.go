package quiz

import (
	"time"

	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/syllabus"
)

// Result is the published outcome of a completed attempt.
type Result struct {
	AttemptID string         `json:"attemptId"`
	Mode      Mode           `json:"mode"`
	Kind      Kind           `json:"kind"`
	Scope     syllabus.Scope `json:"scope"`

	// Score is the number of correct answers.
	Score int `json:"score"`

	// Total is the length of the attempt, answered or not.
	Total int `json:"total"`

	// Answers is the full review sequence in question order.
	Answers []Answer `json:"answers"`

	// TimedOut is true when the exam clock forced completion.
	TimedOut bool `json:"timedOut"`

	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// Percent returns the score as a rounded percentage of Total.
func (r Result) Percent() int {
	p, _ := stats.Percent(r.Score, r.Total)
	return p
}

// Duration returns the time taken.
func (r Result) Duration() time.Duration {
	if r.CompletedAt.Before(r.StartedAt) {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// Unanswered returns the number of questions left when the attempt ended.
func (r Result) Unanswered() int {
	return max(r.Total-len(r.Answers), 0)
}
