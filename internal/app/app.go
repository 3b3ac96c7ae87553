// Package app is the Bubble Tea root model. It owns the session controller
// and keeps the screen stack in step with the controller's display state.
// The update loop is the only goroutine that touches the controller; slow
// work such as question generation runs in commands and reports back with
// messages.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/az104/internal/router"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/screens/dashboard"
	"github.com/abhisek/az104/internal/screens/examsetup"
	"github.com/abhisek/az104/internal/screens/loading"
	"github.com/abhisek/az104/internal/screens/login"
	"github.com/abhisek/az104/internal/screens/practicesetup"
	"github.com/abhisek/az104/internal/screens/profile"
	"github.com/abhisek/az104/internal/screens/question"
	"github.com/abhisek/az104/internal/screens/results"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Controller *session.Controller
	Logger     *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	ctrl   *session.Controller
	logger *slog.Logger
	router *router.Router
	shown  session.Display

	// fetching is the ticket whose questions are being generated.
	fetching    *session.Ticket
	cancelFetch context.CancelFunc

	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := opts.Controller.Display()
	return AppModel{
		ctx:    ctx,
		ctrl:   opts.Controller,
		logger: logger,
		router: router.New(screenFor(opts.Controller, d)),
		shown:  d,
	}
}

// screenFor builds the screen for a display state.
func screenFor(ctrl *session.Controller, d session.Display) screen.Screen {
	switch d {
	case session.DisplayDashboard:
		return dashboard.New(ctrl)
	case session.DisplayPracticeSetup:
		return practicesetup.New(ctrl)
	case session.DisplayExamSetup:
		return examsetup.New(ctrl)
	case session.DisplayAccount:
		return profile.New(ctrl)
	case session.DisplayLoading:
		return loading.New(ctrl)
	case session.DisplayQuestion:
		return question.New(ctrl)
	case session.DisplayResults:
		return results.New(ctrl)
	default:
		return login.New(ctrl)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopFetch()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, m.router.Pop()
			}
		}
		cmd = m.router.Update(msg)

	case screen.StartMsg:
		cmd = m.start(msg.Request)

	case screen.FetchedMsg:
		cmd = m.install(msg)

	case screen.TimerTickMsg:
		if m.ctrl.Tick(msg.AttemptID) {
			cmd = screen.TimerTick(msg.AttemptID)
		}

	default:
		cmd = m.router.Update(msg)
	}

	return m, tea.Batch(cmd, m.sync())
}

// start requests an attempt and launches the generator call.
func (m *AppModel) start(req session.StartRequest) tea.Cmd {
	t, err := m.ctrl.Request(req)
	if err != nil {
		m.logger.Info("attempt not started", "kind", req.Kind, "mode", req.Mode, "err", err)
		return nil
	}

	m.stopFetch()
	ctx, cancel := context.WithCancel(m.ctx)
	m.fetching = t
	m.cancelFetch = cancel

	ctrl := m.ctrl
	return func() tea.Msg {
		qs, err := ctrl.Fetch(ctx, t)
		return screen.FetchedMsg{Ticket: t, Questions: qs, Err: err}
	}
}

// install hands a finished fetch to the controller and starts the exam
// clock when the attempt is timed.
func (m *AppModel) install(msg screen.FetchedMsg) tea.Cmd {
	if msg.Ticket == m.fetching {
		m.stopFetch()
	}

	err := m.ctrl.Install(msg.Ticket, msg.Questions, msg.Err)
	switch {
	case errors.Is(err, session.ErrStaleAttempt):
		m.logger.Debug("discarding stale question batch", "attempt", msg.Ticket.AttemptID)
		return nil
	case err != nil:
		return nil
	}

	if v, ok := m.ctrl.Attempt(); ok && v.TimerActive {
		return screen.TimerTick(v.ID)
	}
	return nil
}

func (m *AppModel) stopFetch() {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	m.fetching = nil
	m.cancelFetch = nil
}

// sync swaps the screen stack when the controller's display has changed.
func (m *AppModel) sync() tea.Cmd {
	d := m.ctrl.Display()
	if d == m.shown {
		return nil
	}
	if d != session.DisplayLoading && m.fetching != nil {
		m.stopFetch()
	}
	m.shown = d
	return m.router.Reset(screenFor(m.ctrl, d))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.Hinter); ok {
		footerHints = hp.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// status is the right side of the header.
func (m AppModel) status() string {
	u, ok := m.ctrl.User()
	if !ok {
		return ""
	}
	daily := "★ daily ready"
	if !m.ctrl.DailyAvailable() {
		daily = "✓ daily done"
	}
	return u.Name + "   " + daily
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
