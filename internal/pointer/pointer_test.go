package pointer

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/jakecoffman/cp/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphfall/internal/assets"
	"github.com/san-kum/glyphfall/internal/collision"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/render"
)

const (
	scaling = 50
	dt      = 1.0 / 60
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newPointer(t *testing.T) (*engine.World, *Pointer) {
	t.Helper()
	rt, err := engine.Load(context.Background(), engine.DefaultOptions())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	w, err := rt.NewWorld(cp.Vector{Y: 9.8})
	if err != nil {
		t.Fatalf("new world failed: %v", err)
	}
	opts := DefaultOptions()
	opts.Now = start
	return w, New(w, cp.Vector{X: 800, Y: 600}, scaling, opts)
}

func TestNewParksAtCorner(t *testing.T) {
	g := NewWithT(t)
	_, p := newPointer(t)

	g.Expect(p.Position()).To(Equal(cp.Vector{X: 16, Y: 12}))
	g.Expect(p.Body().Kind()).To(Equal(engine.Kinematic))
	g.Expect(p.Enabled()).To(BeFalse())

	cols := p.Body().Colliders()
	g.Expect(len(cols)).To(BeNumerically(">=", 2))
	for _, c := range cols {
		g.Expect(c.Group()).To(Equal(collision.Pointer))
		g.Expect(c.Enabled()).To(BeFalse())
	}
	g.Expect(cols[0].Shape().(engine.Ball).Radius).To(Equal(0.55))
}

func TestTickEnablesAfterDelay(t *testing.T) {
	g := NewWithT(t)
	_, p := newPointer(t)

	p.Tick(start.Add(999 * time.Millisecond))
	g.Expect(p.Enabled()).To(BeFalse())

	p.Tick(start.Add(time.Second))
	g.Expect(p.Enabled()).To(BeTrue())
	for _, c := range p.Body().Colliders() {
		g.Expect(c.Enabled()).To(BeTrue())
		g.Expect(c.Filter()).To(Equal(collision.Filter(collision.Pointer)))
	}
}

func TestUpdateConvergesWithoutOvershoot(t *testing.T) {
	g := NewWithT(t)
	w, p := newPointer(t)
	target := cp.Vector{X: 100, Y: 50}
	goal := target.Mult(1.0 / scaling)

	prev := p.Position().Distance(goal)
	for i := 0; i < 40; i++ {
		p.Update(target)
		w.Step(dt)
		pos := p.Position()
		d := pos.Distance(goal)
		g.Expect(d).To(BeNumerically("<=", prev), "step %d moved away from the target", i)
		g.Expect(pos.X).To(BeNumerically(">=", goal.X-1e-9))
		g.Expect(pos.Y).To(BeNumerically(">=", goal.Y-1e-9))
		prev = d
	}
	g.Expect(prev).To(BeNumerically("<", 1e-6))
}

func TestUpdateHalvesDistance(t *testing.T) {
	g := NewWithT(t)
	w, p := newPointer(t)

	p.Update(cp.Vector{X: 0, Y: 600})
	w.Step(dt)
	g.Expect(p.Position().X).To(BeNumerically("~", 8, 1e-9))
	g.Expect(p.Position().Y).To(BeNumerically("~", 12, 1e-9))
}

type counter struct {
	fills []color.RGBA
	polys int
}

func (c *counter) Size() (int, int)                          { return 800, 600 }
func (c *counter) Clear()                                    {}
func (c *counter) FillCircle(cp.Vector, float64, color.RGBA) {}
func (c *counter) FillPolygon(_ []cp.Vector, f color.RGBA)   { c.polys++; c.fills = append(c.fills, f) }

func TestRenderDrawsBackgroundThenLines(t *testing.T) {
	g := NewWithT(t)
	_, p := newPointer(t)
	rec := &counter{}

	p.Render(render.NewContext(rec), false)
	g.Expect(rec.polys).To(Equal(1 + len(assets.HandDefault.Lines)))
	g.Expect(rec.fills[0]).To(Equal(Background))
	g.Expect(rec.fills[len(rec.fills)-1]).To(Equal(Lines))
}

func TestRenderPlacesHotspotOnPosition(t *testing.T) {
	g := NewWithT(t)
	_, p := newPointer(t)
	rec := &recorder{}

	p.Render(render.NewContext(rec), true)
	g.Expect(rec.polys).To(HaveLen(1 + len(assets.HandPressed.Lines)))

	// parked at (800, 600)px, so the outline shifts by that minus the hotspot
	shift := cp.Vector{X: 800, Y: 600}.Sub(assets.HandPressed.Hotspot)
	want := assets.HandPressed.Background[0].Add(shift)
	got := rec.polys[0][0]
	g.Expect(got.X).To(BeNumerically("~", want.X, 1e-9))
	g.Expect(got.Y).To(BeNumerically("~", want.Y, 1e-9))
}

type recorder struct {
	polys [][]cp.Vector
}

func (r *recorder) Size() (int, int)                          { return 800, 600 }
func (r *recorder) Clear()                                    {}
func (r *recorder) FillCircle(cp.Vector, float64, color.RGBA) {}
func (r *recorder) FillPolygon(p []cp.Vector, _ color.RGBA)   { r.polys = append(r.polys, p) }

func TestRenderScalesHandWithScene(t *testing.T) {
	g := NewWithT(t)
	rt, err := engine.Load(context.Background(), engine.DefaultOptions())
	g.Expect(err).NotTo(HaveOccurred())
	w, err := rt.NewWorld(cp.Vector{})
	g.Expect(err).NotTo(HaveOccurred())

	opts := DefaultOptions()
	opts.Now = start
	p := New(w, cp.Vector{X: 100, Y: 100}, 25, opts)
	rec := &recorder{}
	p.Render(render.NewContext(rec), false)

	// half the design scaling halves the distance from the hotspot
	want := cp.Vector{X: 100, Y: 100}.Add(assets.HandDefault.Background[0].Sub(assets.HandDefault.Hotspot).Mult(0.5))
	got := rec.polys[0][0]
	g.Expect(got.X).To(BeNumerically("~", want.X, 1e-9))
	g.Expect(got.Y).To(BeNumerically("~", want.Y, 1e-9))
}
