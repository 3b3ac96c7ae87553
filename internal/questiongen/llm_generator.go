package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/az104/internal/llm"
	"github.com/abhisek/az104/internal/quiz"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an LLMGenerator. A nil logger discards output.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGenerator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// Generate requests one batch and filters it through the validator chain.
// Every failure is returned as a *GenerationError.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]quiz.Question, error) {
	if req.Count < 1 {
		return nil, &GenerationError{Err: fmt.Errorf("invalid question count %d", req.Count)}
	}

	if llm.PurposeFrom(ctx) == "" {
		ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	}
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req, g.config.MaxAvoid)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		g.logger.Error("question generation failed", "topic", req.Topic, "count", req.Count, "err", err)
		return nil, &GenerationError{Err: fmt.Errorf("LLM generation failed: %w", err)}
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		g.logger.Error("question generation returned unparseable JSON", "err", err)
		return nil, &GenerationError{Err: fmt.Errorf("failed to parse LLM response: %w", err)}
	}

	qs, err := g.filter(raw.Questions)
	if err != nil {
		g.logger.Error("question generation failed", "topic", req.Topic, "err", err)
		return nil, &GenerationError{Err: err}
	}

	if len(qs) > req.Count {
		qs = qs[:req.Count]
	}
	if len(qs) < req.Count {
		g.logger.Warn("short question batch", "requested", req.Count, "delivered", len(qs))
	}
	return qs, nil
}

// filter drops questions failing any validator and repeated questions.
func (g *LLMGenerator) filter(in []quiz.Question) ([]quiz.Question, error) {
	if len(in) == 0 {
		return nil, ErrEmptyBatch
	}

	out := make([]quiz.Question, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i := range in {
		q := in[i]
		if verr := g.validate(&q); verr != nil {
			g.logger.Warn("dropping malformed question", "index", i, "validator", verr.Validator, "reason", verr.Message)
			continue
		}
		key := questionKey(q.Text)
		if seen[key] {
			g.logger.Warn("dropping duplicate question", "index", i)
			continue
		}
		seen[key] = true
		out = append(out, q)
	}

	if len(out) == 0 {
		return nil, ErrMalformedBatch
	}
	return out, nil
}

func (g *LLMGenerator) validate(q *quiz.Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
