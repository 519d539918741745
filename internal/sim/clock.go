package sim

import "time"

const (
	DefaultTimestep = time.Second / 60
	DefaultMaxFrame = 250 * time.Millisecond
)

// Clock converts variable wall-clock frame times into whole fixed steps.
// Whatever does not fill a step stays in the accumulator for the next
// frame.
type Clock struct {
	timestep time.Duration
	maxFrame time.Duration
	last     time.Time
	acc      time.Duration
}

func NewClock(timestep, maxFrame time.Duration, start time.Time) *Clock {
	if timestep <= 0 {
		timestep = DefaultTimestep
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	return &Clock{timestep: timestep, maxFrame: maxFrame, last: start}
}

// Advance adds the time since the previous frame, clamped to
// [0, maxFrame], and returns the amount added.
func (c *Clock) Advance(now time.Time) time.Duration {
	frame := now.Sub(c.last)
	if frame > c.maxFrame {
		frame = c.maxFrame
	}
	if frame < 0 {
		frame = 0
	}
	c.last = now
	c.acc += frame
	return frame
}

// Drain consumes one timestep if the accumulator holds one.
func (c *Clock) Drain() bool {
	if c.acc < c.timestep {
		return false
	}
	c.acc -= c.timestep
	return true
}

// Alpha is the unconsumed share of a step, in [0, 1) after draining.
func (c *Clock) Alpha() float64 {
	return float64(c.acc) / float64(c.timestep)
}

func (c *Clock) Timestep() time.Duration    { return c.timestep }
func (c *Clock) MaxFrame() time.Duration    { return c.maxFrame }
func (c *Clock) Accumulator() time.Duration { return c.acc }
func (c *Clock) Last() time.Time            { return c.last }
