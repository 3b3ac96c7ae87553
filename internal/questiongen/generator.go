// Package questiongen produces batches of AZ-104 multiple-choice questions
// from an LLM provider.
package questiongen

import (
	"context"

	"github.com/abhisek/az104/internal/quiz"
)

// Generator produces quiz questions.
type Generator interface {
	// Generate returns between 1 and req.Count validated questions, or an
	// error. Callers must not assume a full batch.
	Generate(ctx context.Context, req Request) ([]quiz.Question, error)
}

// Request describes the batch to generate.
type Request struct {
	// Topic is the focus of the questions, a domain or a sub-topic. Empty
	// means the whole syllabus.
	Topic string

	// Group is the domain Topic belongs to.
	Group string

	// Count is the number of questions wanted.
	Count int

	// Avoid lists question texts asked recently that should not repeat.
	Avoid []string
}
