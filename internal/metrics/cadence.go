package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/glyphfall/internal/sim"
)

// Cadence keeps one sample per frame and reduces them on demand.
type Cadence struct {
	name    string
	pick    func(sim.FrameStats) float64
	reduce  func([]float64) float64
	samples []float64
}

func newCadence(name string, pick func(sim.FrameStats) float64, reduce func([]float64) float64) *Cadence {
	return &Cadence{name: name, pick: pick, reduce: reduce}
}

func mean(xs []float64) float64 { return stat.Mean(xs, nil) }

func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

func steps(s sim.FrameStats) float64 { return float64(s.Steps) }

func NewStepsPerFrame() *Cadence {
	return newCadence("steps_per_frame", steps, mean)
}

// NewStepJitter measures how unevenly steps land across frames.
func NewStepJitter() *Cadence {
	return newCadence("step_jitter", steps, stdDev)
}

func NewAlphaMean() *Cadence {
	return newCadence("alpha_mean", func(s sim.FrameStats) float64 { return s.Alpha }, mean)
}

// NewClampRate is the share of frames cut down to maxFrame seconds.
func NewClampRate(maxFrame float64) *Cadence {
	return newCadence("clamp_rate", func(s sim.FrameStats) float64 {
		if s.FrameTime.Seconds() >= maxFrame {
			return 1
		}
		return 0
	}, mean)
}

func (c *Cadence) Name() string { return c.name }

func (c *Cadence) ObserveFrame(stats sim.FrameStats) {
	c.samples = append(c.samples, c.pick(stats))
}

func (c *Cadence) Value() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return c.reduce(c.samples)
}

func (c *Cadence) Reset() {
	c.samples = c.samples[:0]
}
