package session

import (
	"time"

	"github.com/vovakirdan/keymash/internal/config"
)

// GoBeat is the beat number shown for the final "go" beat.
const GoBeat = 0

// Countdown is the between-round transition. It waits for confirmation,
// then counts numbered beats down to GoBeat from accumulated frame deltas.
type Countdown struct {
	steps          int
	step           time.Duration
	goBeat         time.Duration
	requireConfirm bool

	phase   Phase
	elapsed time.Duration
	beat    int
}

// NewCountdown creates a countdown from its config section.
func NewCountdown(cfg config.CountdownConfig) *Countdown {
	c := &Countdown{
		steps:          cfg.Steps,
		step:           cfg.Step,
		goBeat:         cfg.Go,
		requireConfirm: cfg.RequireConfirm,
	}
	if c.steps < 0 || c.step <= 0 {
		c.steps = 0
	}
	if c.goBeat < 0 {
		c.goBeat = 0
	}
	return c
}

// Begin restarts the countdown. It reports whether the beats are already
// running, which is the case when no confirmation is required.
func (c *Countdown) Begin() bool {
	c.elapsed = 0
	c.beat = c.steps
	if c.requireConfirm {
		c.phase = AwaitingConfirmation
		return false
	}
	c.phase = CountdownRunning
	return true
}

// Confirm starts the beats. It returns false outside AwaitingConfirmation.
func (c *Countdown) Confirm() bool {
	if c.phase != AwaitingConfirmation {
		return false
	}
	c.phase = CountdownRunning
	return true
}

// Advance accumulates dt while running. changed reports a new beat and done
// reports that the final beat has elapsed.
func (c *Countdown) Advance(dt time.Duration) (changed, done bool) {
	if c.phase != CountdownRunning {
		return false, false
	}
	c.elapsed += dt

	numbered := time.Duration(c.steps) * c.step
	if c.elapsed >= numbered+c.goBeat {
		c.phase = PhaseNone
		return false, true
	}

	beat := GoBeat
	if c.elapsed < numbered {
		beat = c.steps - int(c.elapsed/c.step)
	}
	if beat != c.beat {
		c.beat = beat
		return true, false
	}
	return false, false
}

// Cancel drops any pending confirmation or running beats.
func (c *Countdown) Cancel() {
	c.phase = PhaseNone
	c.elapsed = 0
}

// Phase returns the current sub-state.
func (c *Countdown) Phase() Phase {
	return c.phase
}

// Beat returns the beat on display: Steps down to 1, then GoBeat.
func (c *Countdown) Beat() int {
	return c.beat
}
