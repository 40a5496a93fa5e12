// Package router keeps the stack of screens the app navigates through.
package router

import (
	"github.com/abhisek/kidquest/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen, so going back skips
// the one it replaced.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the screen stack. The bottom screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen (if it is a screen.Closer) and resumes the one
// below it (if it is a screen.Resumer). Popping the root does nothing.
func (r *Router) Pop() tea.Cmd {
	if r.top() < 1 {
		return nil
	}
	closeScreen(r.stack[r.top()])
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]

	if res, ok := r.stack[r.top()].(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace closes the top screen, puts s in its place and runs s.Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if old := r.stack[r.top()]; old != s {
		closeScreen(old)
	}
	r.stack[r.top()] = s
	return s.Init()
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

// Active is the screen currently shown.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages itself and hands everything else to
// the active screen, storing whatever screen it returns.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	if len(r.stack) == 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
