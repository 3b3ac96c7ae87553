package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/az104/internal/account"
	"github.com/abhisek/az104/internal/questiongen"
	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/store"
)

type stubGenerator struct {
	err error
}

func (g *stubGenerator) Generate(_ context.Context, req questiongen.Request) ([]quiz.Question, error) {
	if g.err != nil {
		return nil, g.err
	}
	qs := make([]quiz.Question, req.Count)
	for i := range qs {
		qs[i] = quiz.Question{
			Text:         fmt.Sprintf("Which SKU %d?", i+1),
			Options:      []string{"Basic", "Standard", "Premium", "Free"},
			CorrectIndex: 2,
			Explanation:  "Premium.",
		}
	}
	return qs, nil
}

func newTestServer(t *testing.T, gen questiongen.Generator) *httptest.Server {
	t.Helper()
	ctrl := session.New(session.Options{
		Generator: gen,
		Accounts:  account.NewRepo(store.NewMemoryKV(), account.DefaultNamespace),
		Now:       func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	loop := session.NewLoop(ctrl, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	srv := httptest.NewServer(NewHandler(loop, Options{}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		loop.Wait()
	})
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	resp, body := call(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestTopics(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	resp, err := srv.Client().Get(srv.URL + "/api/topics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var topics []topicView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&topics))
	require.Len(t, topics, 5)
	assert.Equal(t, "Manage Azure identities and governance", topics[0].Name)
	assert.Len(t, topics[0].SubTopics, 3)
}

func TestStartRequiresLogin(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	resp, body := call(t, srv, http.MethodPost, "/api/attempts", map[string]any{"mode": "practice"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, codeNoUser, body["error"])
}

func TestPracticeFlow(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, body := call(t, srv, http.MethodPost, "/api/login", map[string]string{"name": "Grace", "email": "grace@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dashboard", body["display"])
	assert.Equal(t, true, body["dailyAvailable"])

	resp, body = call(t, srv, http.MethodPost, "/api/attempts", map[string]any{
		"mode": "practice", "topic": "Azure DNS", "count": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	attempt := body["attempt"].(map[string]any)
	assert.Equal(t, "topic", attempt["kind"])
	assert.Equal(t, float64(2), attempt["total"])
	q := attempt["question"].(map[string]any)
	assert.Equal(t, "Which SKU 1?", q["question"])
	assert.NotContains(t, q, "correctAnswerIndex")

	resp, body = call(t, srv, http.MethodPost, "/api/attempts/current/answers", map[string]int{"option": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["accepted"])
	fb := body["attempt"].(map[string]any)["feedback"].(map[string]any)
	assert.Equal(t, true, fb["isCorrect"])

	_, body = call(t, srv, http.MethodPost, "/api/attempts/current/answers", map[string]int{"option": 0})
	assert.Equal(t, false, body["accepted"], "second submit on the same question is rejected")

	call(t, srv, http.MethodPost, "/api/attempts/current/advance", nil)
	call(t, srv, http.MethodPost, "/api/attempts/current/answers", map[string]int{"option": 0})
	_, body = call(t, srv, http.MethodPost, "/api/attempts/current/advance", nil)

	assert.Equal(t, "results", body["display"])
	result := body["attempt"].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, float64(1), result["score"])
	assert.Equal(t, float64(50), result["percent"])
	assert.Equal(t, "Good effort! Keep studying the areas you missed.", result["feedback"])

	st := body["stats"].(map[string]any)
	assert.Equal(t, float64(2), st["totalAnswered"])
	topics := st["topicStats"].(map[string]any)
	assert.Contains(t, topics, "Configure and manage virtual networking")
}

func TestExamHidesScore(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	call(t, srv, http.MethodPost, "/api/login", map[string]string{})

	resp, body := call(t, srv, http.MethodPost, "/api/attempts", map[string]any{"mode": "exam", "count": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	attempt := body["attempt"].(map[string]any)
	assert.NotContains(t, attempt, "score")
	assert.Equal(t, float64(900), attempt["remainingSeconds"])

	_, body = call(t, srv, http.MethodPost, "/api/attempts/current/answers", map[string]int{"option": 2})
	attempt = body["attempt"].(map[string]any)
	assert.NotContains(t, attempt, "feedback")
	assert.Equal(t, float64(1), attempt["index"])

	resp, body = call(t, srv, http.MethodDelete, "/api/attempts/current", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dashboard", body["display"])
	assert.NotContains(t, body, "attempt")
	assert.Equal(t, float64(0), body["stats"].(map[string]any)["totalAnswered"])
}

func TestInvalidExamLength(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	call(t, srv, http.MethodPost, "/api/login", map[string]string{})
	resp, body := call(t, srv, http.MethodPost, "/api/attempts", map[string]any{"mode": "exam", "count": 15})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, codeBadRequest, body["error"])
}

func TestUnknownTopic(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	call(t, srv, http.MethodPost, "/api/login", map[string]string{})
	resp, _ := call(t, srv, http.MethodPost, "/api/attempts", map[string]any{"topic": "Kubernetes"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDailyTwice(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	call(t, srv, http.MethodPost, "/api/login", map[string]string{})

	resp, _ := call(t, srv, http.MethodPost, "/api/attempts", map[string]any{"kind": "daily"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	for range 5 {
		call(t, srv, http.MethodPost, "/api/attempts/current/answers", map[string]int{"option": 2})
		call(t, srv, http.MethodPost, "/api/attempts/current/advance", nil)
	}
	_, body := call(t, srv, http.MethodGet, "/api/state", nil)
	assert.Equal(t, false, body["dailyAvailable"])
	assert.Equal(t, "2024-06-01", body["lastDaily"])

	resp, body = call(t, srv, http.MethodPost, "/api/attempts", map[string]any{"kind": "daily"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, codeDailyCompleted, body["error"])
}

func TestGenerationFailure(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{err: errors.New("no key")})
	call(t, srv, http.MethodPost, "/api/login", map[string]string{})

	resp, body := call(t, srv, http.MethodPost, "/api/attempts", map[string]any{"mode": "practice"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, codeGenerationFailed, body["error"])
	assert.Equal(t, questiongen.GenerationFailedMessage, body["message"])

	_, body = call(t, srv, http.MethodGet, "/api/state", nil)
	assert.Equal(t, "practice-setup", body["display"])
	assert.Equal(t, questiongen.GenerationFailedMessage, body["message"])
}

func TestSubmitWithoutAttempt(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	call(t, srv, http.MethodPost, "/api/login", map[string]string{})
	resp, body := call(t, srv, http.MethodPost, "/api/attempts/current/answers", map[string]int{"option": 0})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, codeNoAttempt, body["error"])

	resp, _ = call(t, srv, http.MethodPost, "/api/attempts/current/answers", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNavigate(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})
	call(t, srv, http.MethodPost, "/api/login", map[string]string{})

	resp, body := call(t, srv, http.MethodPost, "/api/navigate", map[string]string{"target": "exam-setup"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "exam-setup", body["display"])

	resp, _ = call(t, srv, http.MethodPost, "/api/navigate", map[string]string{"target": "results"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body = call(t, srv, http.MethodPost, "/api/logout", nil)
	assert.Equal(t, "login", body["display"])
	assert.NotContains(t, body, "user")
}
