package storage

import (
	"fmt"

	"github.com/san-kum/glyphfall/internal/sim"
)

// Trace records object poses as a driver steps. It is a sim.Observer.
type Trace struct {
	// Every keeps one row per Every steps; values below 2 keep all.
	Every int

	Header []string
	Times  []float64
	Rows   [][]float64
	frames int
}

func NewTrace(every int) *Trace {
	return &Trace{Every: every}
}

func (t *Trace) OnStep(info sim.StepInfo) {
	if t.Every > 1 && info.Step%t.Every != 0 {
		return
	}
	if t.Header == nil {
		t.Header = make([]string, 0, 3*len(info.Objects))
		for i := range info.Objects {
			t.Header = append(t.Header,
				fmt.Sprintf("obj%d_x", i), fmt.Sprintf("obj%d_y", i), fmt.Sprintf("obj%d_angle", i))
		}
	}

	row := make([]float64, 0, 3*len(info.Objects))
	for _, o := range info.Objects {
		p := o.Body.Translation()
		row = append(row, p.X, p.Y, o.Body.Rotation())
	}
	t.Times = append(t.Times, info.Time)
	t.Rows = append(t.Rows, row)
}

func (t *Trace) OnFrame(sim.FrameStats) { t.frames++ }

func (t *Trace) Frames() int { return t.frames }

// Column returns the named column, or nil.
func (t *Trace) Column(name string) []float64 {
	return column(t.Header, t.Rows, name)
}

func column(header []string, rows [][]float64, name string) []float64 {
	idx := -1
	for i, h := range header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if idx < len(r) {
			out = append(out, r[idx])
		}
	}
	return out
}
