package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/glyphfall/internal/render"
	"github.com/san-kum/glyphfall/internal/sim"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints a driver's frames to a plain terminal. It is a
// sim.Observer and skips frames arriving faster than frameRate of real
// time.
type LiveRenderer struct {
	label     string
	driver    *sim.Driver
	out       io.Writer
	frameRate int
	lastFrame time.Time
	surface   *render.BrailleSurface
	ctx       *render.Context
}

func NewLiveRenderer(label string, d *sim.Driver, out io.Writer, cols, rows, frameRate int) *LiveRenderer {
	surface := render.NewBrailleSurface(cols, rows)
	return &LiveRenderer{
		label:     label,
		driver:    d,
		out:       out,
		frameRate: frameRate,
		surface:   surface,
		ctx:       render.NewContext(surface),
	}
}

func (r *LiveRenderer) OnStep(sim.StepInfo) {}

func (r *LiveRenderer) OnFrame(stats sim.FrameStats) {
	if r.frameRate > 0 && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.driver.Render(r.ctx, stats.Alpha)
	r.render(stats)
}

func (r *LiveRenderer) render(stats sim.FrameStats) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  steps=%d  alpha=%.2f\n", r.label, stats.SimTime, stats.Steps, stats.Alpha))
	b.WriteString("  " + strings.Repeat("-", r.surface.Cols) + "\n")

	for _, row := range r.surface.Grid {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", r.surface.Cols) + "\n")
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
