// Package quiz models a single quiz attempt: its questions, recorded answers
// and the lifecycle from loading to results.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// OptionCount is the number of options requested per generated question.
const OptionCount = 4

// Question is one multiple-choice question. Questions are immutable once
// produced by a generator.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswerIndex"`
	Explanation  string   `json:"explanation"`
}

// Validate checks the structural invariants of a question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("need at least 2 options, got %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range [0, %d)", q.CorrectIndex, len(q.Options))
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return errors.New("explanation is empty")
	}
	return nil
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Answer records the user's response to one question.
type Answer struct {
	Question Question `json:"question"`
	Selected int      `json:"selectedAnswerIndex"`
	Correct  bool     `json:"isCorrect"`
}

// SelectedOption returns the text of the chosen option.
func (a Answer) SelectedOption() string {
	if a.Selected < 0 || a.Selected >= len(a.Question.Options) {
		return ""
	}
	return a.Question.Options[a.Selected]
}

// Mode selects how an attempt is scored.
type Mode string

const (
	// ModePractice gives feedback after every question and folds stats
	// per answer.
	ModePractice Mode = "practice"

	// ModeExam is timed, hides feedback and folds stats once at the end.
	ModeExam Mode = "exam"
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePractice, ModeExam:
		return Mode(s), nil
	case "":
		return ModePractice, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Kind identifies how the attempt was started.
type Kind string

const (
	KindDaily Kind = "daily" // once-per-day challenge
	KindTopic Kind = "topic" // scoped to a domain or sub-topic
	KindQuick Kind = "quick" // ad-hoc, all topics
)

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDaily, KindTopic, KindQuick:
		return Kind(s), nil
	case "":
		return KindQuick, nil
	}
	return "", fmt.Errorf("unknown quiz kind %q", s)
}
