package metrics

import (
	"math"

	"github.com/san-kum/glyphfall/internal/sim"
)

// KineticEnergy is the mean over steps of the translational kinetic energy
// summed across objects.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) ObserveStep(info sim.StepInfo) {
	sum := 0.0
	for _, o := range info.Objects {
		m := o.Body.Mass()
		if math.IsInf(m, 0) || m <= 0 {
			continue
		}
		sum += 0.5 * m * o.Body.Velocity().LengthSq()
	}
	e.total += sum
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) ObserveStep(info sim.StepInfo) {
	for _, o := range info.Objects {
		p.peak = math.Max(p.peak, o.Body.Velocity().Length())
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
