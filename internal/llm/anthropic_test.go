package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicAgainst(t *testing.T, status int, body any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-sonnet-4-20250514"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-sonnet-4-20250514",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(kind, msg string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": msg}}
}

func TestAnthropicGenerate(t *testing.T) {
	p := anthropicAgainst(t, http.StatusOK, anthropicMessage("```json\n[" + oneQuestion + "]\n```", "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write AZ-104 questions.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate 1 question."}},
		Schema:    batchSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.JSONEq(t, `{"questions":[`+oneQuestion+`]}`, string(resp.Content))
}

func TestAnthropicGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(t *testing.T, err error)
	}{
		{"truncated", http.StatusOK, anthropicMessage(`{"questions":[{"ques`, "max_tokens"), func(t *testing.T, err error) {
			var e *ErrMaxTokensExceeded
			assert.ErrorAs(t, err, &e)
		}},
		{"schema mismatch", http.StatusOK, anthropicMessage(`{"questions":"none"}`, "end_turn"), func(t *testing.T, err error) {
			var e *ErrInvalidResponse
			assert.ErrorAs(t, err, &e)
		}},
		{"rate limited", http.StatusTooManyRequests, anthropicError("rate_limit_error", "slow down"), func(t *testing.T, err error) {
			var e *ErrRateLimit
			assert.ErrorAs(t, err, &e)
		}},
		{"server error", http.StatusInternalServerError, anthropicError("api_error", "boom"), func(t *testing.T, err error) {
			var e *ErrProviderUnavailable
			assert.ErrorAs(t, err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := anthropicAgainst(t, tt.status, tt.body)
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				Schema:    batchSchema(),
				MaxTokens: 64,
			})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicModels(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-x", resolveModel("claude-opus-x", anthropicModels))
	assert.Equal(t, "claude-sonnet-4-20250514", (&AnthropicProvider{model: "claude-sonnet-4-20250514"}).ModelID())
}
