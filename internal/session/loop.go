package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// ErrLoopStopped is returned by Loop methods after Run has returned.
var ErrLoopStopped = errors.New("session loop stopped")

// Loop serializes every Controller call on one goroutine. Exam clock ticks
// are delivered as operations on the same queue, so a tick and a submit are
// never processed at the same time. The TUI does not need a Loop; the
// Bubble Tea update loop plays the same role there.
type Loop struct {
	ctrl   *Controller
	logger *slog.Logger
	tick   time.Duration

	ops     chan func(*Controller)
	stopped chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewLoop wraps ctrl. tick is the exam clock period; zero means one second.
func NewLoop(ctrl *Controller, tick time.Duration, logger *slog.Logger) *Loop {
	if tick <= 0 {
		tick = time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{
		ctrl:    ctrl,
		logger:  logger,
		tick:    tick,
		ops:     make(chan func(*Controller)),
		stopped: make(chan struct{}),
	}
}

// Run processes operations until ctx is done. Ticker goroutines exit once
// Run returns; Wait blocks until they have.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.stopped) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case op := <-l.ops:
			op(l.ctrl)
		}
	}
}

// Wait blocks until every ticker started by Start has exited.
func (l *Loop) Wait() {
	l.wg.Wait()
}

// Do runs fn on the loop goroutine and waits for it to return. Values
// written by fn are visible to the caller once Do returns nil.
func (l *Loop) Do(ctx context.Context, fn func(*Controller)) error {
	done := make(chan struct{})
	op := func(c *Controller) {
		defer close(done)
		fn(c)
	}
	select {
	case l.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return ErrLoopStopped
	}
	<-done
	return nil
}

// Start requests an attempt, fetches its questions off the loop and
// installs them on it. Exam attempts get a ticker that feeds the clock
// until the attempt completes, is abandoned or is replaced.
func (l *Loop) Start(ctx context.Context, req StartRequest) error {
	var (
		t   *Ticket
		err error
	)
	if derr := l.Do(ctx, func(c *Controller) { t, err = c.Request(req) }); derr != nil {
		return derr
	}
	if err != nil {
		return err
	}

	qs, fetchErr := l.ctrl.Fetch(ctx, t)

	var timed bool
	install := func(c *Controller) {
		err = c.Install(t, qs, fetchErr)
		if err == nil {
			v, _ := c.Attempt()
			timed = v.TimerActive
		}
	}
	// The outcome is always delivered so the attempt never stays loading.
	if derr := l.Do(context.WithoutCancel(ctx), install); derr != nil {
		return derr
	}
	if err != nil {
		return err
	}
	if timed {
		l.startTicker(t.AttemptID)
	}
	return nil
}

func (l *Loop) startTicker(attemptID string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(l.tick)
		defer ticker.Stop()

		for {
			select {
			case <-l.stopped:
				return
			case <-ticker.C:
				more := false
				if err := l.Do(context.Background(), func(c *Controller) { more = c.Tick(attemptID) }); err != nil {
					return
				}
				if !more {
					l.logger.Debug("exam clock stopped", "attempt", attemptID)
					return
				}
			}
		}
	}()
}
