// Package router keeps the stack of terminal screens. The base screen
// mirrors the controller's display; overlays such as the answer review sit
// on top of it until popped.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/screen"
)

// PushScreenMsg asks the router to open Screen as an overlay.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the topmost overlay.
type PopScreenMsg struct{}

// Router holds a base screen and zero or more overlays.
type Router struct {
	base     screen.Screen
	overlays []screen.Screen
}

func New(base screen.Screen) *Router {
	return &Router{base: base}
}

// Push opens s above the current screen and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.overlays = append(r.overlays, s)
	return s.Init()
}

// Pop closes the topmost overlay. The base screen is never popped.
func (r *Router) Pop() tea.Cmd {
	if n := len(r.overlays); n > 0 {
		r.overlays[n-1] = nil
		r.overlays = r.overlays[:n-1]
	}
	return nil
}

// Reset drops every overlay and replaces the base with s.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.base, r.overlays = s, nil
	return s.Init()
}

// Active is the screen receiving input.
func (r *Router) Active() screen.Screen {
	if n := len(r.overlays); n > 0 {
		return r.overlays[n-1]
	}
	return r.base
}

// Depth counts the base screen plus overlays.
func (r *Router) Depth() int { return 1 + len(r.overlays) }

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}
	if r.base == nil {
		return nil
	}

	next, cmd := r.Active().Update(msg)
	if n := len(r.overlays); n > 0 {
		r.overlays[n-1] = next
	} else {
		r.base = next
	}
	return cmd
}

func (r *Router) View(width, height int) string {
	if r.base == nil {
		return ""
	}
	return r.Active().View(width, height)
}
