package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/session"
)

// StartMsg asks the app to request a new attempt and fetch its questions.
type StartMsg struct {
	Request session.StartRequest
}

// Start returns a command that emits StartMsg.
func Start(req session.StartRequest) tea.Cmd {
	return func() tea.Msg { return StartMsg{Request: req} }
}

// FetchedMsg carries a generated batch back to the update loop.
type FetchedMsg struct {
	Ticket    *session.Ticket
	Questions []quiz.Question
	Err       error
}

// TimerTickMsg is one elapsed exam second for AttemptID.
type TimerTickMsg struct {
	AttemptID string
}

// TimerTick schedules the next exam second.
func TimerTick(attemptID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TimerTickMsg{AttemptID: attemptID}
	})
}

// FeedbackDoneMsg ends the practice feedback pause shown for question Index
// of AttemptID.
type FeedbackDoneMsg struct {
	AttemptID string
	Index     int
}

// FeedbackDone schedules FeedbackDoneMsg after session.FeedbackDelay.
func FeedbackDone(attemptID string, index int) tea.Cmd {
	return tea.Tick(session.FeedbackDelay, func(time.Time) tea.Msg {
		return FeedbackDoneMsg{AttemptID: attemptID, Index: index}
	})
}
