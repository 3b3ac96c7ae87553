package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/az104/internal/account"
	"github.com/abhisek/az104/internal/questiongen"
	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/syllabus"
)

// Error codes returned in the "error" field.
const (
	codeBadRequest       = "bad_request"
	codeNoUser           = "not_signed_in"
	codeDailyCompleted   = "daily_already_completed"
	codeGenerationFailed = "generation_failed"
	codeNoAttempt        = "no_attempt"
	codeUnavailable      = "unavailable"
)

type errResp struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errResp{Error: code, Message: msg})
}

// writeControllerErr maps controller conditions onto HTTP statuses.
func writeControllerErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrDailyAlreadyCompleted):
		writeErr(w, http.StatusConflict, codeDailyCompleted, err.Error())
	case errors.Is(err, session.ErrGenerationFailed):
		writeErr(w, http.StatusBadGateway, codeGenerationFailed, questiongen.GenerationFailedMessage)
	case errors.Is(err, session.ErrNoUser):
		writeErr(w, http.StatusUnauthorized, codeNoUser, err.Error())
	case errors.Is(err, session.ErrInvalidRequest):
		writeErr(w, http.StatusBadRequest, codeBadRequest, err.Error())
	case errors.Is(err, session.ErrLoopStopped):
		writeErr(w, http.StatusServiceUnavailable, codeUnavailable, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

type topicView struct {
	Name      string   `json:"name"`
	SubTopics []string `json:"subTopics"`
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	domains := syllabus.Domains()
	out := make([]topicView, len(domains))
	for i, d := range domains {
		out[i] = topicView{Name: d.Name, SubTopics: d.SubTopics}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var st stateResponse
	if err := s.loop.Do(r.Context(), func(c *session.Controller) { st = snapshot(c) }); err != nil {
		writeControllerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, codeBadRequest, "bad json")
		return
	}
	ctx := r.Context()
	var st stateResponse
	err := s.loop.Do(ctx, func(c *session.Controller) {
		c.Login(ctx, account.Credentials{Name: req.Name, Email: req.Email})
		st = snapshot(c)
	})
	if err != nil {
		writeControllerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var st stateResponse
	err := s.loop.Do(ctx, func(c *session.Controller) {
		c.Logout(ctx)
		st = snapshot(c)
	})
	if err != nil {
		writeControllerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, codeBadRequest, "bad json")
		return
	}
	var (
		st     stateResponse
		navErr error
	)
	err := s.loop.Do(r.Context(), func(c *session.Controller) {
		navErr = c.Navigate(session.Display(req.Target))
		st = snapshot(c)
	})
	if err == nil {
		err = navErr
	}
	if err != nil {
		writeControllerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type startBody struct {
	Mode  string `json:"mode"`
	Kind  string `json:"kind"`
	Topic string `json:"topic"`
	Group string `json:"group"`
	Count int    `json:"count"`
}

func (b startBody) request() (session.StartRequest, error) {
	mode, err := quiz.ParseMode(b.Mode)
	if err != nil {
		return session.StartRequest{}, err
	}
	kind, err := quiz.ParseKind(b.Kind)
	if err != nil {
		return session.StartRequest{}, err
	}
	scope, err := syllabus.Resolve(b.Topic, b.Group)
	if err != nil {
		return session.StartRequest{}, err
	}
	if kind == quiz.KindQuick && !scope.IsAll() {
		kind = quiz.KindTopic
	}
	return session.StartRequest{Mode: mode, Kind: kind, Scope: scope, Count: b.Count}, nil
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var body startBody
	if err := decode(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, codeBadRequest, "bad json")
		return
	}
	req, err := body.request()
	if err != nil {
		writeErr(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	if err := s.loop.Start(r.Context(), req); err != nil {
		s.logger.Warn("start attempt", "mode", req.Mode, "kind", req.Kind, "err", err)
		writeControllerErr(w, err)
		return
	}

	var st stateResponse
	if err := s.loop.Do(r.Context(), func(c *session.Controller) { st = snapshot(c) }); err != nil {
		writeControllerErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option *int `json:"option"`
	}
	if err := decode(r, &req); err != nil || req.Option == nil {
		writeErr(w, http.StatusBadRequest, codeBadRequest, "option is required")
		return
	}

	var (
		st       stateResponse
		accepted bool
		present  bool
	)
	err := s.loop.Do(r.Context(), func(c *session.Controller) {
		_, present = c.Attempt()
		if present {
			_, serr := c.Submit(*req.Option)
			accepted = serr == nil
		}
		st = snapshot(c)
	})
	if err != nil {
		writeControllerErr(w, err)
		return
	}
	if !present {
		writeErr(w, http.StatusNotFound, codeNoAttempt, "no current attempt")
		return
	}
	st.Accepted = &accepted
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var (
		st      stateResponse
		present bool
	)
	err := s.loop.Do(r.Context(), func(c *session.Controller) {
		_, present = c.Attempt()
		if present {
			_, _ = c.Advance()
		}
		st = snapshot(c)
	})
	if err != nil {
		writeControllerErr(w, err)
		return
	}
	if !present {
		writeErr(w, http.StatusNotFound, codeNoAttempt, "no current attempt")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	var (
		st     stateResponse
		navErr error
	)
	err := s.loop.Do(r.Context(), func(c *session.Controller) {
		navErr = c.Navigate(session.DisplayDashboard)
		st = snapshot(c)
	})
	if err == nil {
		err = navErr
	}
	if err != nil {
		writeControllerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
