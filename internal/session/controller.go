// Package session is the quiz orchestrator: it gates the daily challenge,
// requests question batches, drives the attempt state machine, folds results
// into the user's statistics and tells the presentation layer what to show.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/abhisek/az104/internal/account"
	"github.com/abhisek/az104/internal/daily"
	"github.com/abhisek/az104/internal/questiongen"
	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/syllabus"
)

// FeedbackDelay is how long practice feedback stays on screen before the
// presentation layer advances on its own.
const FeedbackDelay = 1500 * time.Millisecond

// HistorySize is the number of recent question texts passed to the generator
// as questions to avoid.
const HistorySize = 30

const persistTimeout = 5 * time.Second

// Options configures a Controller.
type Options struct {
	Generator questiongen.Generator
	Accounts  *account.Repo

	// Logger receives persistence warnings and lifecycle events.
	// Nil discards output.
	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Location is the reference zone for the daily gate. Defaults to UTC.
	Location *time.Location

	// History tracks recently asked questions. A new one is created when nil.
	History *questiongen.History
}

// StartRequest asks for a new attempt.
type StartRequest struct {
	Mode  quiz.Mode
	Kind  quiz.Kind
	Scope syllabus.Scope

	// Count overrides the default length. Exam lengths must be one of
	// syllabus.ExamLengths.
	Count int
}

// Ticket identifies a requested attempt while its questions are fetched.
type Ticket struct {
	AttemptID string
	Request   questiongen.Request
}

// Controller owns the signed-in user's statistics, the daily gate and the
// current attempt. It is not safe for concurrent use: every method except
// Fetch must be called from one goroutine, such as the Bubble Tea update
// loop or a Loop.
type Controller struct {
	gen      questiongen.Generator
	accounts *account.Repo
	logger   *slog.Logger
	now      func() time.Time
	loc      *time.Location
	history  *questiongen.History

	display Display
	message string

	user  *account.User
	stats stats.UserStats
	gate  daily.Gate

	attempt  *quiz.Attempt
	returnTo Display
}

// New creates a Controller on the login display.
func New(opts Options) *Controller {
	c := &Controller{
		gen:      opts.Generator,
		accounts: opts.Accounts,
		logger:   opts.Logger,
		now:      opts.Now,
		loc:      opts.Location,
		history:  opts.History,
		display:  DisplayLogin,
		stats:    stats.New(),
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.loc == nil {
		c.loc = time.UTC
	}
	if c.history == nil {
		c.history = questiongen.NewHistory(HistorySize)
	}
	return c
}

// Resume restores the stored identity, if any, and reports whether a user
// is now signed in.
func (c *Controller) Resume(ctx context.Context) bool {
	u, err := c.accounts.ActiveUser(ctx)
	if err != nil {
		c.logger.Warn("restore active user", "key", c.accounts.UserKey(), "err", err)
		return false
	}
	if u == nil {
		return false
	}
	c.signIn(ctx, *u)
	return true
}

// Login accepts any credentials, stores the identity and loads the user's
// statistics and daily date.
func (c *Controller) Login(ctx context.Context, creds account.Credentials) account.User {
	u := account.Authenticate(creds)
	if err := c.accounts.SetActiveUser(ctx, u); err != nil {
		c.logger.Warn("persist active user", "key", c.accounts.UserKey(), "err", err)
	}
	c.signIn(ctx, u)
	return u
}

func (c *Controller) signIn(ctx context.Context, u account.User) {
	c.discardAttempt()
	c.user = &u

	s, err := c.accounts.LoadStats(ctx, u.ID)
	if err != nil {
		c.logger.Warn("load stats", "key", c.accounts.StatsKey(u.ID), "err", err)
	}
	c.stats = s

	last, err := c.accounts.LoadLastDaily(ctx, u.ID)
	if err != nil {
		c.logger.Warn("load last daily", "key", c.accounts.LastDailyKey(u.ID), "err", err)
		last = daily.Date{}
	}
	c.gate = daily.Gate{Last: last}

	c.display = DisplayDashboard
	c.message = ""
	c.logger.Info("signed in", "user", u.ID, "answered", c.stats.TotalAnswered)
}

// Logout forgets the identity. Per-user statistics stay in storage.
func (c *Controller) Logout(ctx context.Context) {
	c.discardAttempt()
	if err := c.accounts.ClearActiveUser(ctx); err != nil {
		c.logger.Warn("clear active user", "key", c.accounts.UserKey(), "err", err)
	}
	c.user = nil
	c.stats = stats.New()
	c.gate = daily.Gate{}
	c.display = DisplayLogin
	c.message = ""
}

// Navigate switches to one of the menu displays. A loading or running
// attempt is abandoned; whatever was already folded stays folded.
func (c *Controller) Navigate(target Display) error {
	if !target.Navigable() {
		return invalid("cannot navigate to %q", target)
	}
	if c.user == nil {
		return ErrNoUser
	}
	c.discardAttempt()
	c.display = target
	c.message = ""
	return nil
}

// Start runs Request, Fetch and Install in sequence. It blocks for the
// duration of the generator call.
func (c *Controller) Start(ctx context.Context, req StartRequest) error {
	t, err := c.Request(req)
	if err != nil {
		return err
	}
	qs, err := c.Fetch(ctx, t)
	return c.Install(t, qs, err)
}

// Request validates req, checks the daily gate and creates a loading
// attempt. The returned ticket is passed to Fetch and then Install.
func (c *Controller) Request(req StartRequest) (*Ticket, error) {
	if c.user == nil {
		return nil, ErrNoUser
	}
	if req.Mode == "" {
		req.Mode = quiz.ModePractice
	}
	if req.Kind == "" {
		req.Kind = quiz.KindQuick
	}

	if req.Kind == quiz.KindDaily && !c.gate.Eligible(c.today()) {
		c.discardAttempt()
		c.display = DisplayDashboard
		c.message = ErrDailyAlreadyCompleted.Error()
		c.logger.Info("daily challenge already completed", "user", c.user.ID, "date", c.gate.Last.String())
		return nil, ErrDailyAlreadyCompleted
	}

	count, err := resolveCount(req)
	if err != nil {
		return nil, err
	}
	if req.Kind == quiz.KindTopic && req.Scope.IsAll() {
		return nil, invalid("topic quiz needs a topic")
	}

	c.discardAttempt()
	c.attempt = quiz.New(quiz.Config{
		Mode:  req.Mode,
		Kind:  req.Kind,
		Scope: req.Scope,
		Count: count,
	})
	c.returnTo = originOf(req)
	c.display = DisplayLoading
	c.message = ""

	c.logger.Info("attempt requested",
		"attempt", c.attempt.ID(),
		"mode", req.Mode,
		"kind", req.Kind,
		"scope", req.Scope.Label(),
		"count", count,
	)

	return &Ticket{
		AttemptID: c.attempt.ID(),
		Request: questiongen.Request{
			Topic: req.Scope.Topic,
			Group: req.Scope.Group,
			Count: count,
			Avoid: c.history.Recent(),
		},
	}, nil
}

// Fetch asks the generator for the ticket's questions. It touches no
// controller state and may run on any goroutine.
func (c *Controller) Fetch(ctx context.Context, t *Ticket) ([]quiz.Question, error) {
	if c.gen == nil {
		return nil, &questiongen.GenerationError{Err: errors.New("no question generator configured")}
	}
	return c.gen.Generate(ctx, t.Request)
}

// Install delivers the fetch outcome. Tickets for attempts that were
// abandoned or replaced in the meantime return ErrStaleAttempt and change
// nothing.
func (c *Controller) Install(t *Ticket, qs []quiz.Question, fetchErr error) error {
	a := c.attempt
	if a == nil || t == nil || a.ID() != t.AttemptID || a.Phase() != quiz.PhaseLoading {
		return ErrStaleAttempt
	}

	if fetchErr == nil {
		fetchErr = a.Load(qs, c.now())
	}
	if fetchErr != nil {
		a.Fail(fetchErr)
		c.attempt = nil
		c.display = c.returnTo
		c.message = userMessage(fetchErr)
		c.logger.Error("question generation failed", "attempt", t.AttemptID, "err", fetchErr)
		return fmt.Errorf("%w: %w", ErrGenerationFailed, fetchErr)
	}

	c.history.Add(qs)
	c.display = DisplayQuestion
	c.logger.Info("attempt started", "attempt", a.ID(), "questions", a.Total(), "time_limit", a.Remaining())
	return nil
}

// Submit answers the current question. Rejected submits return the state
// machine's sentinel error and change nothing.
func (c *Controller) Submit(selected int) (quiz.Outcome, error) {
	a := c.attempt
	if a == nil {
		return quiz.Outcome{}, quiz.ErrNotInProgress
	}
	out, err := a.Submit(selected, c.now())
	if err != nil {
		c.logger.Debug("submit rejected", "attempt", a.ID(), "err", err)
		return out, err
	}

	if a.Mode() == quiz.ModePractice {
		topic, _ := a.Scope().StatsTopic()
		c.stats = stats.Fold(c.stats, out.Answer.Correct, topic)
		c.saveStats()
	}
	if out.Completed {
		c.finish(a)
	}
	return out, nil
}

// Advance leaves practice feedback and moves to the next question. After
// the last question the attempt has already completed in Submit, and
// Advance only moves the display to the results.
func (c *Controller) Advance() (bool, error) {
	a := c.attempt
	if a == nil {
		return false, quiz.ErrNotInProgress
	}
	done, err := a.Advance(c.now())
	if err != nil {
		return false, err
	}
	if done {
		c.display = DisplayResults
	}
	return done, nil
}

// Tick delivers one elapsed second to attempt attemptID. It reports whether
// further ticks are wanted; ticks for any other attempt are ignored.
func (c *Controller) Tick(attemptID string) bool {
	a := c.attempt
	if a == nil || a.ID() != attemptID {
		return false
	}
	if a.Tick(c.now()) {
		c.logger.Info("exam time expired", "attempt", a.ID(), "answered", a.Answered(), "total", a.Total())
		c.finish(a)
		return false
	}
	return a.TimerActive()
}

// Abandon discards the current attempt without leaving the display it is
// on. Most callers want Navigate instead.
func (c *Controller) Abandon() {
	c.discardAttempt()
}

// finish runs exactly once, on the transition to completed. Pending practice
// feedback keeps the question on display until Advance.
func (c *Controller) finish(a *quiz.Attempt) {
	res, _ := a.Result()

	if a.Mode() == quiz.ModeExam {
		c.stats = stats.FoldExam(c.stats, res.Score, res.Total)
		c.saveStats()
	}
	if a.Kind() == quiz.KindDaily {
		today := c.today()
		c.gate.MarkCompleted(today)
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err := c.accounts.SaveLastDaily(ctx, c.user.ID, today)
		cancel()
		if err != nil {
			c.logger.Warn("persist last daily", "key", c.accounts.LastDailyKey(c.user.ID), "err", err)
		}
	}

	if !a.AwaitingAdvance() {
		c.display = DisplayResults
	}
	c.logger.Info("attempt completed",
		"attempt", a.ID(),
		"mode", a.Mode(),
		"score", res.Score,
		"total", res.Total,
		"timed_out", res.TimedOut,
	)
}

func (c *Controller) discardAttempt() {
	if c.attempt == nil {
		return
	}
	if p := c.attempt.Phase(); p == quiz.PhaseLoading || p == quiz.PhaseInProgress {
		c.logger.Info("attempt abandoned", "attempt", c.attempt.ID(), "answered", c.attempt.Answered())
	}
	c.attempt.Abandon()
	c.attempt = nil
}

func (c *Controller) saveStats() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := c.accounts.SaveStats(ctx, c.user.ID, c.stats); err != nil {
		c.logger.Warn("persist stats", "key", c.accounts.StatsKey(c.user.ID), "err", err)
	}
}

func (c *Controller) today() daily.Date {
	return daily.On(c.now(), c.loc)
}

// Display returns the screen to show.
func (c *Controller) Display() Display { return c.display }

// Message returns the notice left by the last failed request, if any.
func (c *Controller) Message() string { return c.message }

// User returns the signed-in identity.
func (c *Controller) User() (account.User, bool) {
	if c.user == nil {
		return account.User{}, false
	}
	return *c.user, true
}

// Stats returns a copy of the user's lifetime statistics.
func (c *Controller) Stats() stats.UserStats { return c.stats.Clone() }

// LastDaily returns the last daily completion date.
func (c *Controller) LastDaily() daily.Date { return c.gate.Last }

// DailyAvailable reports whether the daily challenge can be taken today.
func (c *Controller) DailyAvailable() bool {
	return c.user != nil && c.gate.Eligible(c.today())
}

// Attempt returns a snapshot of the current attempt.
func (c *Controller) Attempt() (AttemptView, bool) {
	if c.attempt == nil {
		return AttemptView{}, false
	}
	return viewOf(c.attempt), true
}

// resolveCount picks the attempt length: an explicit override, the daily
// length, the exam default, or the practice default.
func resolveCount(req StartRequest) (int, error) {
	if req.Count < 0 {
		return 0, invalid("negative question count %d", req.Count)
	}
	if req.Kind == quiz.KindDaily && req.Mode == quiz.ModeExam {
		return 0, invalid("the daily challenge is practice only")
	}
	if req.Mode == quiz.ModeExam {
		n := req.Count
		if n == 0 {
			n = syllabus.ExamMin
		}
		if !syllabus.ValidExamLength(n) {
			return 0, invalid("exam length %d not in %v", n, syllabus.ExamLengths())
		}
		return n, nil
	}
	switch {
	case req.Count > 0:
		return req.Count, nil
	case req.Kind == quiz.KindDaily:
		return daily.QuestionCount, nil
	default:
		return syllabus.PracticeLength, nil
	}
}

// originOf is the display to return to when generation fails.
func originOf(req StartRequest) Display {
	switch {
	case req.Kind == quiz.KindDaily:
		return DisplayDashboard
	case req.Mode == quiz.ModeExam:
		return DisplayExamSetup
	default:
		return DisplayPracticeSetup
	}
}
