package quiz

import (
	"fmt"
	"time"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// sampleQuestions returns n questions whose correct option is always index 1.
func sampleQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Text:         fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: 1,
			Explanation:  "B is right.",
		}
	}
	return qs
}

func loaded(mode Mode, n int) *Attempt {
	a := New(Config{Mode: mode, Kind: KindQuick, Count: n})
	if err := a.Load(sampleQuestions(n), t0); err != nil {
		panic(err)
	}
	return a
}
