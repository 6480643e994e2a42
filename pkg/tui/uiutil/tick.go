package uiutil

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// TickFunc schedules fn after d. Components take one so tests can record
// timers instead of waiting for them.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Tick is the production TickFunc.
func Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return tea.Tick(d, fn)
}

// Clock returns the current instant.
type Clock func() time.Time

// OrTick returns t, or Tick when t is nil.
func OrTick(t TickFunc) TickFunc {
	if t == nil {
		return Tick
	}
	return t
}

// OrNow returns c, or time.Now when c is nil.
func OrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
