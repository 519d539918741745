// Package object pairs simulation bodies with the shapes drawn for them.
package object

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/interp"
	"github.com/san-kum/glyphfall/internal/render"
)

// Strict makes Render panic on geometry it cannot draw. Tests turn it on.
var Strict = false

// DefaultRadius is the corner radius, in pixels, of rendered boxes.
const DefaultRadius = 4

// PhysicsObject is a body with one collider and how to draw it.
type PhysicsObject struct {
	Body     *engine.Body
	Collider *engine.Collider
	Color    color.RGBA
	// Radius rounds box corners, in pixels.
	Radius float64

	scaling         float64
	prevTranslation cp.Vector
	prevRotation    float64
}

// New creates the body and its collider in world. The snapshot starts at
// the initial pose.
func New(world *engine.World, scaling float64, body engine.BodyDesc, collider engine.ColliderDesc, fill color.RGBA) *PhysicsObject {
	b := world.CreateBody(body)
	c := world.CreateCollider(collider, b)
	o := &PhysicsObject{
		Body:     b,
		Collider: c,
		Color:    fill,
		Radius:   DefaultRadius,
		scaling:  scaling,
	}
	o.SaveBodyState()
	return o
}

// SaveBodyState records the current pose as the start of the next
// interpolation interval. Call it before every step.
func (o *PhysicsObject) SaveBodyState() {
	o.prevTranslation = o.Body.Translation()
	o.prevRotation = o.Body.Rotation()
}

// Previous returns the saved pose.
func (o *PhysicsObject) Previous() (cp.Vector, float64) {
	return o.prevTranslation, o.prevRotation
}

// Pose blends the saved pose toward the current one, in meters and radians.
func (o *PhysicsObject) Pose(alpha float64) (cp.Vector, float64) {
	return interp.LerpVector(o.prevTranslation, o.Body.Translation(), alpha),
		interp.LerpAngle(o.prevRotation, o.Body.Rotation(), alpha)
}

func (o *PhysicsObject) Scaling() float64 { return o.scaling }

// ApplyImpulse pushes the body and wakes it.
func (o *PhysicsObject) ApplyImpulse(impulse cp.Vector) {
	o.Body.ApplyImpulse(impulse)
}

// Render draws the object at its interpolated pose.
func (o *PhysicsObject) Render(ctx *render.Context, alpha float64) {
	pos, rot := o.Pose(alpha)
	s := o.scaling
	offset := o.Collider.Offset().Mult(s)

	ctx.SetFill(o.Color)
	switch g := o.Collider.Shape().(type) {
	case engine.Ball:
		ctx.Save()
		ctx.Translate(pos.X*s, pos.Y*s)
		ctx.Rotate(rot)
		ctx.FillCircle(offset, g.Radius*s)
		ctx.Restore()

	case engine.Box:
		hx, hy := g.HalfExtents.X*s, g.HalfExtents.Y*s
		ctx.Save()
		ctx.Translate(pos.X*s, pos.Y*s)
		ctx.Rotate(rot)
		ctx.FillRoundRect(offset.X-hx, offset.Y-hy, hx*2, hy*2, o.Radius)
		ctx.Restore()

	case engine.ConvexPolygon:
		pts := make([]cp.Vector, len(g.Vertices))
		for i, v := range g.Vertices {
			pts[i] = v.Mult(s).Add(offset)
		}
		ctx.Save()
		ctx.Translate(pos.X*s, pos.Y*s)
		ctx.Rotate(rot)
		ctx.FillPolygon(pts)
		ctx.Restore()

	default:
		if Strict {
			panic(fmt.Sprintf("object: cannot render geometry %T", g))
		}
	}
}
