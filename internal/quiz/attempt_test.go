package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/az104/internal/syllabus"
)

func TestNew_StartsLoading(t *testing.T) {
	a := New(Config{Mode: ModeExam, Count: 10})
	if a.Phase() != PhaseLoading {
		t.Fatalf("phase = %v, want loading", a.Phase())
	}
	if a.ID() == "" {
		t.Error("expected generated ID")
	}
	if _, ok := a.Current(); ok {
		t.Error("loading attempt should have no current question")
	}
}

func TestLoad_FailureReturnsToIdle(t *testing.T) {
	a := New(Config{Mode: ModePractice, Count: 5})
	err := a.Load(nil, t0)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
	if a.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", a.Phase())
	}
	if a.Failure() == nil {
		t.Error("expected failure to be recorded")
	}
}

func TestLoad_RejectsMalformedQuestion(t *testing.T) {
	qs := sampleQuestions(3)
	qs[2].CorrectIndex = 7

	a := New(Config{Count: 3})
	if err := a.Load(qs, t0); err == nil {
		t.Fatal("expected error")
	}
	if a.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", a.Phase())
	}
}

func TestLoad_OnlyOnce(t *testing.T) {
	a := loaded(ModePractice, 2)
	if err := a.Load(sampleQuestions(2), t0); !errors.Is(err, ErrNotLoading) {
		t.Errorf("second Load err = %v, want ErrNotLoading", err)
	}
}

func TestPractice_ScoreMatchesCorrectAnswers(t *testing.T) {
	a := loaded(ModePractice, 10)
	for i := 0; i < 10; i++ {
		choice := 0
		if i < 7 {
			choice = 1
		}
		out, err := a.Submit(choice, t0)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if out.Completed != (i == 9) {
			t.Fatalf("practice submit %d completed = %v", i, out.Completed)
		}
		done, err := a.Advance(t0)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if done != (i == 9) {
			t.Fatalf("advance %d done = %v", i, done)
		}
	}

	res, ok := a.Result()
	if !ok {
		t.Fatal("expected result")
	}
	correct := 0
	for _, ans := range res.Answers {
		if ans.Correct {
			correct++
		}
	}
	if res.Score != 7 || correct != 7 {
		t.Errorf("score = %d, correct answers = %d; want 7", res.Score, correct)
	}
	if res.Percent() != 70 {
		t.Errorf("percent = %d, want 70", res.Percent())
	}
}

func TestPractice_HoldsOnAnsweredQuestion(t *testing.T) {
	a := loaded(ModePractice, 3)
	if _, err := a.Submit(1, t0); err != nil {
		t.Fatal(err)
	}
	if !a.AwaitingAdvance() {
		t.Error("expected feedback to be pending")
	}
	if a.Index() != 0 {
		t.Errorf("index = %d, want 0 until advance", a.Index())
	}
	last, ok := a.LastAnswer()
	if !ok || !last.Correct {
		t.Errorf("last answer = %+v", last)
	}

	// A second submit for the same question is rejected and changes nothing.
	if _, err := a.Submit(0, t0); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("err = %v, want ErrAlreadyAnswered", err)
	}
	if a.Answered() != 1 || a.Score() != 1 {
		t.Errorf("answered=%d score=%d after rejected submit", a.Answered(), a.Score())
	}
}

func TestPractice_LastAnswerCompletesWithFeedbackPending(t *testing.T) {
	a := loaded(ModePractice, 2)
	if _, err := a.Submit(1, t0); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Advance(t0); err != nil {
		t.Fatal(err)
	}

	out, err := a.Submit(0, t0.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Completed || a.Phase() != PhaseCompleted {
		t.Fatalf("completed=%v phase=%v, want completed on the last answer", out.Completed, a.Phase())
	}
	if !a.AwaitingAdvance() {
		t.Error("expected feedback to stay pending after completion")
	}
	if q, ok := a.Current(); !ok || q.Text != a.questions[1].Text {
		t.Errorf("current = %+v, %v; want the last question", q, ok)
	}
	if _, ok := a.Result(); !ok {
		t.Error("expected result as soon as the last answer is in")
	}

	done, err := a.Advance(t0.Add(2 * time.Minute))
	if err != nil || !done {
		t.Fatalf("advance = %v, %v", done, err)
	}
	if a.AwaitingAdvance() {
		t.Error("feedback still pending after advance")
	}
	res, _ := a.Result()
	if !res.CompletedAt.Equal(t0.Add(time.Minute)) {
		t.Errorf("completed at %v, want the time of the last answer", res.CompletedAt)
	}
	if _, err := a.Advance(t0); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("second advance err = %v, want ErrNotInProgress", err)
	}
}

func TestAdvance_WithoutAnswerRejected(t *testing.T) {
	a := loaded(ModePractice, 2)
	if _, err := a.Advance(t0); !errors.Is(err, ErrNoFeedbackPending) {
		t.Errorf("err = %v, want ErrNoFeedbackPending", err)
	}
}

func TestSubmit_OptionOutOfRange(t *testing.T) {
	a := loaded(ModeExam, 2)
	for _, idx := range []int{-1, 4} {
		if _, err := a.Submit(idx, t0); !errors.Is(err, ErrOptionOutOfRange) {
			t.Errorf("Submit(%d) err = %v", idx, err)
		}
	}
	if a.Answered() != 0 {
		t.Errorf("answered = %d, want 0", a.Answered())
	}
}

func TestExam_AdvancesImmediately(t *testing.T) {
	a := loaded(ModeExam, 3)
	out, err := a.Submit(0, t0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Completed || a.Index() != 1 {
		t.Fatalf("after first submit: completed=%v index=%d", out.Completed, a.Index())
	}
	if a.AwaitingAdvance() {
		t.Error("exam mode never waits for feedback")
	}
	a.Submit(1, t0)
	out, _ = a.Submit(1, t0)
	if !out.Completed {
		t.Fatal("expected last submit to complete")
	}
	if a.TimerActive() {
		t.Error("timer should stop on completion")
	}
	if _, err := a.Submit(1, t0); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("submit after completion err = %v", err)
	}
	res, _ := a.Result()
	if res.Score != 2 || res.Total != 3 || res.TimedOut {
		t.Errorf("result = %+v", res)
	}
}

func TestExam_TimerBudget(t *testing.T) {
	a := loaded(ModeExam, 10)
	if a.Remaining() != 900 {
		t.Errorf("remaining = %d, want 900", a.Remaining())
	}
	if !a.TimerActive() {
		t.Error("expected timer to be active")
	}

	p := loaded(ModePractice, 10)
	if p.TimerActive() || p.Tick(t0) {
		t.Error("practice attempts have no timer")
	}
}

func TestExam_TimerForcesCompletion(t *testing.T) {
	a := loaded(ModeExam, 10)
	for i := 0; i < 4; i++ {
		choice := 1
		if i == 3 {
			choice = 2
		}
		a.Submit(choice, t0)
	}

	ticks := 0
	for a.Phase() == PhaseInProgress {
		ticks++
		forced := a.Tick(t0)
		if forced != (a.Phase() == PhaseCompleted) {
			t.Fatalf("tick %d: forced=%v phase=%v", ticks, forced, a.Phase())
		}
	}
	if ticks != 900 {
		t.Errorf("ticks = %d, want 900", ticks)
	}

	res, _ := a.Result()
	if !res.TimedOut || res.Score != 3 || res.Total != 10 || len(res.Answers) != 4 {
		t.Errorf("result = score %d total %d answers %d timedOut %v", res.Score, res.Total, len(res.Answers), res.TimedOut)
	}
	if res.Unanswered() != 6 {
		t.Errorf("unanswered = %d, want 6", res.Unanswered())
	}

	// Late ticks are ignored.
	if a.Tick(t0) {
		t.Error("tick after completion reported forced completion")
	}
}

func TestExam_NormalCompletionDisarmsTimer(t *testing.T) {
	a := New(Config{Mode: ModeExam, SecondsPerQuestion: 1})
	a.Load(sampleQuestions(2), t0)
	a.Submit(1, t0)
	out, _ := a.Submit(1, t0)
	if !out.Completed {
		t.Fatal("expected completion")
	}
	for i := 0; i < 5; i++ {
		if a.Tick(t0) {
			t.Fatal("timer fired after normal completion")
		}
	}
	res, _ := a.Result()
	if res.TimedOut {
		t.Error("normal completion marked as timed out")
	}
}

func TestAbandon(t *testing.T) {
	a := loaded(ModeExam, 3)
	a.Submit(1, t0)
	a.Abandon()
	if a.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", a.Phase())
	}
	if a.TimerActive() || a.Tick(t0) {
		t.Error("abandoned attempt still ticking")
	}
	if _, ok := a.Result(); ok {
		t.Error("abandoned attempt should have no result")
	}
}

func TestAnswers_ReturnsCopy(t *testing.T) {
	a := loaded(ModeExam, 2)
	a.Submit(1, t0)
	got := a.Answers()
	got[0].Correct = false
	if !a.Answers()[0].Correct {
		t.Error("Answers exposed internal slice")
	}
}

func TestConfig_ScopeRoundTrip(t *testing.T) {
	scope := syllabus.ForSubTopic("Implement and manage storage", "Storage Accounts")
	a := New(Config{Mode: ModePractice, Kind: KindTopic, Scope: scope, Count: 5})
	if a.Scope() != scope || a.Kind() != KindTopic || a.Requested() != 5 {
		t.Errorf("config not retained: %+v %v %d", a.Scope(), a.Kind(), a.Requested())
	}
}
