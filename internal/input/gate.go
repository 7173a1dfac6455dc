// Package input gates the raw key-press stream and forwards accepted
// presses to a single bound handler.
package input

import "github.com/vovakirdan/keymash/internal/core"

// Handler receives accepted key presses.
type Handler func(key core.Key)

// Gate holds a single-slot handler and an enabled flag. Presses arriving
// while disabled or unbound are dropped.
type Gate struct {
	handler Handler
	enabled bool
}

// NewGate creates a disabled, unbound gate.
func NewGate() *Gate {
	return &Gate{}
}

// Bind replaces the current handler. Callers tearing down a previous
// handler should Unbind first so no press reaches a stale target.
func (g *Gate) Bind(h Handler) {
	g.handler = h
}

// Unbind clears the handler.
func (g *Gate) Unbind() {
	g.handler = nil
}

// Enable turns forwarding on or off.
func (g *Gate) Enable(enabled bool) {
	g.enabled = enabled
}

// Enabled reports whether presses are forwarded.
func (g *Gate) Enabled() bool {
	return g.enabled
}

// Bound reports whether a handler is bound.
func (g *Gate) Bound() bool {
	return g.handler != nil
}

// Press forwards key to the bound handler when enabled.
// Returns true if the press was delivered.
func (g *Gate) Press(key core.Key) bool {
	if !g.enabled || key == core.KeyNone {
		return false
	}
	h := g.handler
	if h == nil {
		return false
	}
	h(key)
	return true
}
