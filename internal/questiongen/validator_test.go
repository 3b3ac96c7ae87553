package questiongen

import (
	"testing"

	"github.com/abhisek/az104/internal/quiz"
)

func TestStructural_Valid(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion()); err != nil {
		t.Fatalf("expected valid, got: %v", err)
	}
}

func TestStructural_Rejects(t *testing.T) {
	v := &StructuralValidator{}
	tests := []struct {
		name   string
		mutate func(q *quiz.Question)
	}{
		{"empty text", func(q *quiz.Question) { q.Text = "  " }},
		{"empty explanation", func(q *quiz.Question) { q.Explanation = "" }},
		{"one option", func(q *quiz.Question) { q.Options = []string{"LRS"} }},
		{"index too high", func(q *quiz.Question) { q.CorrectIndex = 4 }},
		{"negative index", func(q *quiz.Question) { q.CorrectIndex = -1 }},
		{"long text", func(q *quiz.Question) { q.Text = string(make([]byte, 2001)) + "x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Validator != "structural" {
				t.Errorf("validator = %q", err.Validator)
			}
		})
	}
}

func TestOptions_Rejects(t *testing.T) {
	v := &OptionsValidator{}

	q := validQuestion()
	q.Options = []string{"LRS", " ", "GRS", "ZRS"}
	if err := v.Validate(q); err == nil {
		t.Error("expected error for blank option")
	}

	q = validQuestion()
	q.Options = []string{"LRS", "ZRS", "lrs", "GRS"}
	if err := v.Validate(q); err == nil {
		t.Error("expected error for duplicate option")
	}

	if err := v.Validate(validQuestion()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
