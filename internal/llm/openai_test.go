package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openaiAgainst builds a provider whose API is served by handler.
func openaiAgainst(t *testing.T, headers map[string]string, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: srv.URL + "/v1",
		Headers: headers,
	})
	require.NoError(t, err)
	return p
}

func replyWith(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var sent map[string]any
	p := openaiAgainst(t, nil, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&sent)
		replyWith(http.StatusOK, chatCompletion(`{"questions":[`+oneQuestion+`]}`, "stop"))(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write AZ-104 questions.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate 1 question."}},
		Schema:    batchSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)

	msgs, _ := sent["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format, _ := sent["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{"truncated", replyWith(http.StatusOK, chatCompletion(`{"questions":[{"quest`, "length")), func(t *testing.T, err error) {
			var e *ErrMaxTokensExceeded
			assert.ErrorAs(t, err, &e)
		}},
		{"no choices", replyWith(http.StatusOK, map[string]any{"model": "gpt-4o-mini", "choices": []any{}}), func(t *testing.T, err error) {
			var e *ErrInvalidResponse
			assert.ErrorAs(t, err, &e)
		}},
		{"rate limited", replyWith(http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"type": "tokens", "message": "slow down", "code": "rate_limit_exceeded"},
		}), func(t *testing.T, err error) {
			var e *ErrRateLimit
			assert.ErrorAs(t, err, &e)
		}},
		{"server error", replyWith(http.StatusInternalServerError, map[string]any{
			"error": map[string]any{"type": "server_error", "message": "boom"},
		}), func(t *testing.T, err error) {
			var e *ErrProviderUnavailable
			assert.ErrorAs(t, err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := openaiAgainst(t, nil, tt.handler).Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 64,
			})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestOpenAISendsConfiguredHeaders(t *testing.T) {
	var title, referer string
	p := openaiAgainst(t, openRouterHeaders, func(w http.ResponseWriter, r *http.Request) {
		title, referer = r.Header.Get("X-Title"), r.Header.Get("HTTP-Referer")
		replyWith(http.StatusOK, chatCompletion(`{}`, "stop"))(w, r)
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "az104", title)
	assert.Equal(t, openRouterHeaders["HTTP-Referer"], referer)
}

func TestOpenAIModelID(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
	assert.Equal(t, ProviderOpenAI, p.Name())

	_, err = NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)
}
