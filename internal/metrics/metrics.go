// Package metrics summarizes runs: frame cadence, motion and how settled the
// scene is.
package metrics

import (
	"sort"

	"github.com/san-kum/glyphfall/internal/sim"
)

type Metric interface {
	Name() string
	Value() float64
	Reset()
}

// StepMetric samples after every fixed step.
type StepMetric interface {
	Metric
	ObserveStep(info sim.StepInfo)
}

// FrameMetric samples after every displayed frame.
type FrameMetric interface {
	Metric
	ObserveFrame(stats sim.FrameStats)
}

// Collector fans driver callbacks out to metrics.
type Collector struct {
	metrics []Metric
}

func NewCollector(ms ...Metric) *Collector {
	return &Collector{metrics: ms}
}

// Default returns the collector used by the run command.
func Default(maxFrame float64) *Collector {
	return NewCollector(
		NewStepsPerFrame(),
		NewStepJitter(),
		NewAlphaMean(),
		NewClampRate(maxFrame),
		NewKineticEnergy(),
		NewPeakSpeed(),
		NewStability(0.05),
	)
}

func (c *Collector) Add(m Metric) { c.metrics = append(c.metrics, m) }

func (c *Collector) OnStep(info sim.StepInfo) {
	for _, m := range c.metrics {
		if sm, ok := m.(StepMetric); ok {
			sm.ObserveStep(info)
		}
	}
}

func (c *Collector) OnFrame(stats sim.FrameStats) {
	for _, m := range c.metrics {
		if fm, ok := m.(FrameMetric); ok {
			fm.ObserveFrame(stats)
		}
	}
}

func (c *Collector) Values() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (c *Collector) Names() []string {
	names := make([]string, 0, len(c.metrics))
	for _, m := range c.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

func (c *Collector) Reset() {
	for _, m := range c.metrics {
		m.Reset()
	}
}
