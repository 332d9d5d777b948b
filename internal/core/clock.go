package core

import "time"

// DefaultMaxCatchUp is the number of fixed steps a single Advance may return
// after a stall before the remaining backlog is dropped.
const DefaultMaxCatchUp = 5

// FrameClock paces a fixed-timestep simulation from wall-clock readings.
// Each call to Advance adds the elapsed time to an accumulator and returns
// how many whole steps fit in it; the sub-step remainder carries over.
type FrameClock struct {
	step     time.Duration
	maxSteps int
	last     time.Time
	acc      time.Duration
	started  bool
}

// NewFrameClock creates a clock producing tickRate steps per second.
// maxSteps <= 0 selects DefaultMaxCatchUp.
func NewFrameClock(tickRate, maxSteps int) *FrameClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxCatchUp
	}
	return &FrameClock{
		step:     time.Second / time.Duration(tickRate),
		maxSteps: maxSteps,
	}
}

// Step returns the duration of one fixed step.
func (c *FrameClock) Step() time.Duration {
	return c.step
}

// Advance records the current time and returns the number of steps to run.
// The first reading always yields exactly one step.
func (c *FrameClock) Advance(now time.Time) int {
	if !c.started {
		c.started = true
		c.last = now
		c.acc = 0
		return 1
	}

	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	c.acc += elapsed

	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	if n > c.maxSteps {
		n = c.maxSteps
	}
	return n
}

// Reset forgets the last reading, so the next Advance starts fresh.
func (c *FrameClock) Reset() {
	c.started = false
	c.acc = 0
}
