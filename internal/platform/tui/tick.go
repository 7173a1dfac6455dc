// Package tui provides the Bubble Tea front-end for keymash.
// It maps terminal keys to input frames, drives the session from a tick
// loop, and renders the round state with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta caps the delta fed to the session after a stall, so a
// suspended terminal does not expire the round in one frame.
const maxFrameDelta = 250 * time.Millisecond

// TickMsg is sent to trigger a session update.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the time between two ticks, clamped to
// [0, maxFrameDelta]. The first tick has no predecessor and yields 0.
func frameDelta(prev, now time.Time) time.Duration {
	if prev.IsZero() {
		return 0
	}
	dt := now.Sub(prev)
	if dt < 0 {
		return 0
	}
	if dt > maxFrameDelta {
		return maxFrameDelta
	}
	return dt
}
