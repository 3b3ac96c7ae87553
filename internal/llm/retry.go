package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff and
// jitter. A malformed reply is retried once; truncation and context errors
// are returned at once.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *slog.Logger
}

// WithRetry wraps p with retries. A nil logger discards retry notices.
func WithRetry(p Provider, cfg RetryConfig, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RetryProvider{inner: p, config: cfg, logger: logger}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }
func (r *RetryProvider) Name() string    { return ProviderName(r.inner) }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidLeft := 1

	var err error
	for attempt := 1; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= attempts || !retryable(err, &invalidLeft) {
			return nil, err
		}

		wait := r.backoff(attempt-1, err)
		r.logger.Debug("retrying llm request",
			"provider", ProviderName(r.inner), "attempt", attempt, "wait", wait, "err", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryable reports whether err is worth another attempt. invalidLeft is
// the remaining budget for malformed replies.
func retryable(err error, invalidLeft *int) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	var auth *ErrUnauthorized
	if errors.As(err, &maxTok) || errors.As(err, &auth) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidLeft == 0 {
			return false
		}
		*invalidLeft--
	}
	return true
}

// backoff returns the wait before retry n (0-based). A rate limit with a
// RetryAfter hint wins over the computed delay.
func (r *RetryProvider) backoff(n int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := math.Min(float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(n)), float64(r.config.MaxWait))
	wait *= 1 + 0.2*(2*rand.Float64()-1) // ±20%
	return time.Duration(math.Max(wait, 0))
}
