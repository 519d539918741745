// Package pointer drives a kinematic hand that follows the real cursor.
package pointer

import (
	"time"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/assets"
	"github.com/san-kum/glyphfall/internal/collision"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/interp"
	"github.com/san-kum/glyphfall/internal/render"
)

var (
	Background = render.MustHex("#FFFCF0")
	Lines      = render.MustHex("#100F0F")
)

// Palm placement relative to the fingertip, in meters.
var (
	palmOffset = cp.Vector{X: 0.2, Y: 1.4}
	palmRadius = 0.7
)

type Options struct {
	// LerpFactor is the share of the remaining distance covered per step.
	LerpFactor float64
	// EnableDelay keeps the colliders off while the hand travels from its
	// parking spot to the first real cursor position.
	EnableDelay time.Duration
	// Radius of the fingertip ball, in meters.
	Radius float64
	// Now is the creation time the delay counts from.
	Now time.Time
}

func DefaultOptions() Options {
	return Options{
		LerpFactor:  0.5,
		EnableDelay: time.Second,
		Radius:      0.55,
	}
}

type Pointer struct {
	body    *engine.Body
	opts    Options
	scaling float64
	created time.Time
	enabled bool
}

// New parks the hand at the bottom-right corner of a viewport given in
// pixels.
func New(world *engine.World, viewport cp.Vector, scaling float64, opts Options) *Pointer {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	body := world.CreateBody(engine.BodyDesc{
		Kind:        engine.Kinematic,
		Translation: viewport.Mult(1 / scaling),
	})

	tip := engine.BallCollider(opts.Radius)
	tip.Group = collision.Pointer
	tip.Disabled = true
	world.CreateCollider(tip, body)

	palm := engine.BallCollider(palmRadius)
	palm.Translation = palmOffset
	palm.Group = collision.Pointer
	palm.Disabled = true
	world.CreateCollider(palm, body)

	return &Pointer{
		body:    body,
		opts:    opts,
		scaling: scaling,
		created: opts.Now,
	}
}

// Tick enables the colliders once the delay has passed.
func (p *Pointer) Tick(now time.Time) {
	if p.enabled || now.Sub(p.created) < p.opts.EnableDelay {
		return
	}
	for _, c := range p.body.Colliders() {
		c.SetEnabled(true)
	}
	p.enabled = true
}

func (p *Pointer) Enabled() bool { return p.enabled }

// Position is the simulated fingertip, in meters.
func (p *Pointer) Position() cp.Vector { return p.body.Translation() }

func (p *Pointer) Body() *engine.Body { return p.body }

// Update eases the hand toward a cursor position given in pixels. The move
// lands on the next world step.
func (p *Pointer) Update(target cp.Vector) {
	goal := target.Mult(1 / p.scaling)
	next := interp.LerpVector(p.body.Translation(), goal, p.opts.LerpFactor)
	p.body.SetNextKinematicTranslation(next)
}

// Render draws the hand with its fingertip on the simulated position. The
// art is resized when the scene is not drawn at assets.HandScaling.
func (p *Pointer) Render(ctx *render.Context, pressed bool) {
	hand := assets.HandDefault
	if pressed {
		hand = assets.HandPressed
	}
	at := p.body.Translation().Mult(p.scaling)
	k := p.scaling / assets.HandScaling

	ctx.Save()
	ctx.Translate(at.X, at.Y)
	ctx.Scale(k, k)
	ctx.SetFill(Background)
	ctx.FillPath([][]cp.Vector{hand.Background}, hand.Hotspot.Neg())
	ctx.SetFill(Lines)
	ctx.FillPath(hand.Lines, hand.Hotspot.Neg())
	ctx.Restore()
}
