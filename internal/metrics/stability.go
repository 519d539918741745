package metrics

import (
	"github.com/san-kum/glyphfall/internal/sim"
)

// Stability is the share of steps where every object was asleep or slower
// than threshold meters per second.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) ObserveStep(info sim.StepInfo) {
	s.samples++
	for _, o := range info.Objects {
		if o.Body.IsSleeping() {
			continue
		}
		if o.Body.Velocity().Length() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
