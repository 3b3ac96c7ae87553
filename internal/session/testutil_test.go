package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/az104/internal/account"
	"github.com/abhisek/az104/internal/questiongen"
	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/store"
)

// fakeGenerator returns n questions whose correct answer is option 1.
type fakeGenerator struct {
	mu    sync.Mutex
	err   error
	short int // deliver this many when > 0
	calls []questiongen.Request
}

func (g *fakeGenerator) Generate(_ context.Context, req questiongen.Request) ([]quiz.Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	n := req.Count
	if g.short > 0 {
		n = g.short
	}
	return sampleQuestions(n), nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func sampleQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			Text:         fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: 1,
			Explanation:  "B is right.",
		}
	}
	return qs
}

// failingKV simulates unavailable persistence.
type failingKV struct{}

var errDiskGone = errors.New("disk gone")

func (failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDiskGone }
func (failingKV) Put(context.Context, string, []byte) error         { return errDiskGone }
func (failingKV) Delete(context.Context, string) error              { return errDiskGone }

// clock is a settable time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type harness struct {
	ctrl  *Controller
	gen   *fakeGenerator
	kv    *store.MemoryKV
	repo  *account.Repo
	clock *clock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	kv := store.NewMemoryKV()
	h := &harness{
		gen:   &fakeGenerator{},
		kv:    kv,
		repo:  account.NewRepo(kv, account.DefaultNamespace),
		clock: &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}
	h.ctrl = New(Options{
		Generator: h.gen,
		Accounts:  h.repo,
		Now:       h.clock.Now,
	})
	return h
}

func (h *harness) login(t *testing.T) account.User {
	t.Helper()
	return h.ctrl.Login(context.Background(), account.Credentials{Name: "Ada", Email: "ada@example.com"})
}

// answer submits sel and advances past practice feedback.
func (h *harness) answer(t *testing.T, sel int) quiz.Outcome {
	t.Helper()
	out, err := h.ctrl.Submit(sel)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if h.ctrl.attempt != nil && h.ctrl.attempt.AwaitingAdvance() {
		if _, err := h.ctrl.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	return out
}
