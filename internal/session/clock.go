package session

import "time"

// Clock scales frame deltas for gameplay time. The round timer and the
// mechanic clocks both read the same scaled delta, so a zero scale freezes
// them together.
type Clock struct {
	scale float64
}

// NewClock returns a clock running at normal speed.
func NewClock() *Clock {
	return &Clock{scale: 1}
}

// SetScale sets the time scale. Negative values are treated as 0.
func (c *Clock) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

// Scale returns the current time scale.
func (c *Clock) Scale() float64 {
	return c.scale
}

// Scaled converts a real frame delta into gameplay time.
func (c *Clock) Scaled(dt time.Duration) time.Duration {
	if c.scale == 1 {
		return dt
	}
	return time.Duration(float64(dt) * c.scale)
}
