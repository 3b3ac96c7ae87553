package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/az104/internal/syllabus"
)

// Phase is the lifecycle state of an attempt.
type Phase int

const (
	PhaseIdle       Phase = iota // not started, failed to load or abandoned
	PhaseLoading                 // waiting for questions
	PhaseInProgress              // presenting questions
	PhaseCompleted               // terminal; results available
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// Rejected operations. Callers treat these as no-ops.
var (
	ErrNotLoading        = errors.New("attempt is not loading")
	ErrNotInProgress     = errors.New("attempt is not in progress")
	ErrAlreadyAnswered   = errors.New("current question already answered")
	ErrOptionOutOfRange  = errors.New("selected option out of range")
	ErrNoFeedbackPending = errors.New("no answered question to advance past")
	ErrNoQuestions       = errors.New("no questions to present")
)

// Config describes an attempt before its questions arrive.
type Config struct {
	// ID identifies the attempt. A random UUID is used when empty.
	ID string

	Mode  Mode
	Kind  Kind
	Scope syllabus.Scope

	// Count is the number of questions requested from the generator.
	Count int

	// SecondsPerQuestion sets the exam budget. Zero means
	// syllabus.SecondsPerQuestion.
	SecondsPerQuestion int
}

// Outcome is the effect of an accepted submit.
type Outcome struct {
	Answer Answer

	// Completed is true when this submit moved the attempt to PhaseCompleted.
	Completed bool
}

// Attempt is the state machine for one run through a batch of questions.
// It is not safe for concurrent use; callers serialize every call.
type Attempt struct {
	cfg   Config
	phase Phase

	questions []Question
	current   int
	answers   []Answer
	score     int

	// awaitingAdvance is set in practice mode between a submit and the
	// caller-triggered advance, while feedback is on screen. After the last
	// question it outlives the move to PhaseCompleted.
	awaitingAdvance bool

	timer    Countdown
	timedOut bool

	startedAt   time.Time
	completedAt time.Time
	failure     error
}

// New creates an attempt in PhaseLoading.
func New(cfg Config) *Attempt {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.Mode == "" {
		cfg.Mode = ModePractice
	}
	if cfg.SecondsPerQuestion <= 0 {
		cfg.SecondsPerQuestion = syllabus.SecondsPerQuestion
	}
	return &Attempt{cfg: cfg, phase: PhaseLoading}
}

// Load installs the question batch and starts the attempt. In exam mode the
// countdown is armed with SecondsPerQuestion for every delivered question.
// A batch that is empty or contains a malformed question fails the attempt.
func (a *Attempt) Load(questions []Question, now time.Time) error {
	if a.phase != PhaseLoading {
		return ErrNotLoading
	}
	if len(questions) == 0 {
		a.Fail(ErrNoQuestions)
		return ErrNoQuestions
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			err = fmt.Errorf("question %d: %w", i+1, err)
			a.Fail(err)
			return err
		}
	}

	a.questions = make([]Question, len(questions))
	copy(a.questions, questions)
	a.answers = make([]Answer, 0, len(questions))
	a.phase = PhaseInProgress
	a.startedAt = now
	if a.cfg.Mode == ModeExam {
		a.timer.Start(len(a.questions) * a.cfg.SecondsPerQuestion)
	}
	return nil
}

// Fail moves a loading attempt back to PhaseIdle.
func (a *Attempt) Fail(err error) {
	if a.phase != PhaseLoading {
		return
	}
	a.phase = PhaseIdle
	a.failure = err
}

// Abandon discards a loading or running attempt. Nothing already recorded is
// undone; the countdown stops.
func (a *Attempt) Abandon() {
	if a.phase == PhaseCompleted {
		return
	}
	a.timer.Stop()
	a.phase = PhaseIdle
	a.awaitingAdvance = false
}

// Submit records the answer to the current question.
//
// In practice mode the attempt stays on the answered question until Advance
// is called; the last answer completes it at once, with feedback still
// pending. In exam mode it moves straight to the next question, or to
// PhaseCompleted after the last one.
func (a *Attempt) Submit(selected int, now time.Time) (Outcome, error) {
	if a.phase != PhaseInProgress {
		return Outcome{}, ErrNotInProgress
	}
	if a.awaitingAdvance || len(a.answers) > a.current {
		return Outcome{}, ErrAlreadyAnswered
	}
	q := a.questions[a.current]
	if selected < 0 || selected >= len(q.Options) {
		return Outcome{}, ErrOptionOutOfRange
	}

	ans := Answer{Question: q, Selected: selected, Correct: selected == q.CorrectIndex}
	a.answers = append(a.answers, ans)
	if ans.Correct {
		a.score++
	}

	if a.cfg.Mode == ModePractice {
		a.awaitingAdvance = true
		if len(a.answers) < len(a.questions) {
			return Outcome{Answer: ans}, nil
		}
		a.complete(now)
		return Outcome{Answer: ans, Completed: true}, nil
	}
	return Outcome{Answer: ans, Completed: a.step(now)}, nil
}

// Advance moves past an answered practice question. It reports whether the
// attempt is completed, which after the last question it already was.
func (a *Attempt) Advance(now time.Time) (bool, error) {
	switch {
	case a.phase == PhaseCompleted && a.awaitingAdvance:
		a.awaitingAdvance = false
		return true, nil
	case a.phase != PhaseInProgress:
		return false, ErrNotInProgress
	case !a.awaitingAdvance:
		return false, ErrNoFeedbackPending
	}
	a.awaitingAdvance = false
	return a.step(now), nil
}

// step moves to the next question or completes the attempt.
func (a *Attempt) step(now time.Time) bool {
	if a.current+1 < len(a.questions) {
		a.current++
		return false
	}
	a.complete(now)
	return true
}

// Tick delivers one elapsed second to the exam countdown. It returns true
// when the tick forced completion.
func (a *Attempt) Tick(now time.Time) bool {
	if a.phase != PhaseInProgress || a.cfg.Mode != ModeExam {
		return false
	}
	if !a.timer.Tick() {
		return false
	}
	a.timedOut = true
	a.complete(now)
	return true
}

func (a *Attempt) complete(now time.Time) {
	a.timer.Stop()
	a.phase = PhaseCompleted
	a.completedAt = now
}

// ID returns the attempt identifier.
func (a *Attempt) ID() string { return a.cfg.ID }

// Mode returns the scoring mode.
func (a *Attempt) Mode() Mode { return a.cfg.Mode }

// Kind returns how the attempt was started.
func (a *Attempt) Kind() Kind { return a.cfg.Kind }

// Scope returns the syllabus scope.
func (a *Attempt) Scope() syllabus.Scope { return a.cfg.Scope }

// Requested returns the number of questions asked of the generator.
func (a *Attempt) Requested() int { return a.cfg.Count }

// Phase returns the lifecycle state.
func (a *Attempt) Phase() Phase { return a.phase }

// Failure returns the load error for an attempt that failed to start.
func (a *Attempt) Failure() error { return a.failure }

// Index returns the zero-based position of the current question.
func (a *Attempt) Index() int { return a.current }

// Total returns the number of questions in the attempt.
func (a *Attempt) Total() int { return len(a.questions) }

// Score returns the number of correct answers so far.
func (a *Attempt) Score() int { return a.score }

// Answered returns the number of answers recorded.
func (a *Attempt) Answered() int { return len(a.answers) }

// Current returns the question on screen, including the last one while its
// feedback is pending.
func (a *Attempt) Current() (Question, bool) {
	if (a.phase != PhaseInProgress && !a.awaitingAdvance) || a.current >= len(a.questions) {
		return Question{}, false
	}
	return a.questions[a.current], true
}

// AwaitingAdvance reports whether practice feedback is pending.
func (a *Attempt) AwaitingAdvance() bool { return a.awaitingAdvance }

// LastAnswer returns the most recent answer.
func (a *Attempt) LastAnswer() (Answer, bool) {
	if len(a.answers) == 0 {
		return Answer{}, false
	}
	return a.answers[len(a.answers)-1], true
}

// Answers returns a copy of the recorded answers in order.
func (a *Attempt) Answers() []Answer {
	out := make([]Answer, len(a.answers))
	copy(out, a.answers)
	return out
}

// Remaining returns the seconds left on the exam clock.
func (a *Attempt) Remaining() int { return a.timer.Remaining() }

// TimerActive reports whether the exam clock is running.
func (a *Attempt) TimerActive() bool { return a.timer.Active() }

// TimedOut reports whether the countdown forced completion.
func (a *Attempt) TimedOut() bool { return a.timedOut }

// Result returns the final result once the attempt has completed.
func (a *Attempt) Result() (Result, bool) {
	if a.phase != PhaseCompleted {
		return Result{}, false
	}
	return Result{
		AttemptID:   a.cfg.ID,
		Mode:        a.cfg.Mode,
		Kind:        a.cfg.Kind,
		Scope:       a.cfg.Scope,
		Score:       a.score,
		Total:       len(a.questions),
		Answers:     a.Answers(),
		TimedOut:    a.timedOut,
		StartedAt:   a.startedAt,
		CompletedAt: a.completedAt,
	}, true
}
