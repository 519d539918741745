// Package sim runs the fixed-timestep loop: wall-clock frames in, whole
// physics steps and interpolated drawing out.
package sim

import (
	"time"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/object"
	"github.com/san-kum/glyphfall/internal/pointer"
	"github.com/san-kum/glyphfall/internal/render"
)

// Driver owns one running scene: the world, its clock, the objects to draw
// and the pointer. Hosts call Frame once per displayed frame.
type Driver struct {
	clock     *Clock
	world     *engine.World
	objects   []*object.PhysicsObject
	pointer   *pointer.Pointer
	observers []Observer

	target  cp.Vector
	pressed bool
	onPress func(pressed bool)

	steps   int
	simTime float64
}

func NewDriver(world *engine.World, clock *Clock) *Driver {
	return &Driver{world: world, clock: clock}
}

func (d *Driver) World() *engine.World { return d.world }
func (d *Driver) Clock() *Clock        { return d.clock }

func (d *Driver) AddObject(o ...*object.PhysicsObject) {
	d.objects = append(d.objects, o...)
}

func (d *Driver) Objects() []*object.PhysicsObject { return d.objects }

// SetPointerProxy installs the hand. Its initial target is where it is
// parked, so it holds still until the first input.
func (d *Driver) SetPointerProxy(p *pointer.Pointer, scaling float64) {
	d.pointer = p
	if p != nil {
		d.target = p.Position().Mult(scaling)
	}
}

func (d *Driver) Pointer() *pointer.Pointer { return d.pointer }

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// OnPress registers a callback for press state changes.
func (d *Driver) OnPress(fn func(pressed bool)) { d.onPress = fn }

// SetPointer records the latest cursor position in pixels. Only the last
// call before a step is seen.
func (d *Driver) SetPointer(px cp.Vector, pressed bool) {
	d.target = px
	if pressed != d.pressed {
		d.pressed = pressed
		if d.onPress != nil {
			d.onPress(pressed)
		}
	}
}

// PointerTarget returns the latest cursor input.
func (d *Driver) PointerTarget() (cp.Vector, bool) { return d.target, d.pressed }

func (d *Driver) Steps() int { return d.steps }

// Time is the simulated seconds consumed so far.
func (d *Driver) Time() float64 { return d.simTime }

// Step runs exactly one fixed step outside the clock.
func (d *Driver) Step() {
	for _, o := range d.objects {
		o.SaveBodyState()
	}
	if d.pointer != nil {
		d.pointer.Update(d.target)
	}

	dt := d.clock.Timestep().Seconds()
	d.world.Step(dt)
	d.simTime += dt
	d.steps++

	if len(d.observers) == 0 {
		return
	}
	info := StepInfo{Step: d.steps, Time: d.simTime, World: d.world, Objects: d.objects}
	for _, obs := range d.observers {
		obs.OnStep(info)
	}
}

// Frame advances the clock to now, runs every whole step owed and draws the
// interpolated scene. A nil ctx skips drawing.
func (d *Driver) Frame(now time.Time, ctx *render.Context) FrameStats {
	stats := FrameStats{Now: now, FrameTime: d.clock.Advance(now)}
	if d.pointer != nil {
		d.pointer.Tick(now)
	}

	for d.clock.Drain() {
		d.Step()
		stats.Steps++
	}

	stats.Alpha = d.clock.Alpha()
	stats.SimTime = d.simTime

	if ctx != nil {
		d.Render(ctx, stats.Alpha)
	}
	for _, obs := range d.observers {
		obs.OnFrame(stats)
	}
	return stats
}

// Render draws every object and then the pointer at alpha.
func (d *Driver) Render(ctx *render.Context, alpha float64) {
	ctx.Clear()
	for _, o := range d.objects {
		o.Render(ctx, alpha)
	}
	if d.pointer != nil {
		d.pointer.Render(ctx, d.pressed)
	}
}
