package questiongen

import (
	"strings"

	"github.com/abhisek/az104/internal/quiz"
)

// StructuralValidator checks that text and explanation are present and
// within length limits, and that the correct index points at an option.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question) *ValidationError {
	if err := q.Validate(); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if len(q.Text) > 2000 {
		return &ValidationError{Validator: v.Name(), Message: "question exceeds 2000 characters"}
	}
	if len(q.Explanation) > 4000 {
		return &ValidationError{Validator: v.Name(), Message: "explanation exceeds 4000 characters"}
	}
	return nil
}

// OptionsValidator rejects blank and repeated options.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *quiz.Question) *ValidationError {
	seen := make(map[string]bool, len(q.Options))
	for i, o := range q.Options {
		key := strings.ToLower(strings.TrimSpace(o))
		if key == "" {
			return &ValidationError{Validator: v.Name(), Message: "option " + string(rune('A'+i)) + " is empty"}
		}
		if seen[key] {
			return &ValidationError{Validator: v.Name(), Message: "duplicate option " + strings.TrimSpace(o)}
		}
		seen[key] = true
	}
	return nil
}
