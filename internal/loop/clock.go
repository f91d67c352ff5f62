package loop

import (
	"time"

	"github.com/coder/quartz"
)

// Clock supplies the time elapsed since the previous frame, in seconds.
type Clock interface {
	Elapsed() float64
}

// FrameClock measures wall time between frames on a quartz clock.
type FrameClock struct {
	clock quartz.Clock
	last  time.Time
}

// NewFrameClock starts measuring from the clock's current time.
func NewFrameClock(clock quartz.Clock) *FrameClock {
	return &FrameClock{clock: clock, last: clock.Now("frame")}
}

// Elapsed returns the seconds since the last call (or since creation).
func (c *FrameClock) Elapsed() float64 {
	now := c.clock.Now("frame")
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return dt
}

// FixedClock reports the same step every frame. Headless runs use it to get
// reproducible matches.
type FixedClock struct {
	Step float64
	now  float64
}

// Elapsed advances the clock by one step.
func (c *FixedClock) Elapsed() float64 {
	c.now += c.Step
	return c.Step
}

// Now returns the total simulated time.
func (c *FixedClock) Now() float64 {
	return c.now
}
