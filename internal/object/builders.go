package object

import (
	"image/color"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/assets"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/render"
)

var Ink = render.MustHex("#100F0F")

type CubeOptions struct {
	HX, HY      float64
	Color       color.RGBA
	Translation cp.Vector
	Rotation    float64
	Restitution float64
	Density     float64
	Sleeping    bool
	// Radius rounds the corners, in pixels.
	Radius float64
}

// DefaultCubeOptions returns a sleeping ink-colored cube with the given
// half extents.
func DefaultCubeOptions(hx, hy float64) CubeOptions {
	return CubeOptions{
		HX:          hx,
		HY:          hy,
		Color:       Ink,
		Restitution: 0.5,
		Density:     1,
		Sleeping:    true,
		Radius:      DefaultRadius,
	}
}

// NewCube creates a dynamic box.
func NewCube(world *engine.World, scaling float64, opts CubeOptions) *PhysicsObject {
	col := engine.BoxCollider(opts.HX, opts.HY)
	col.Restitution = opts.Restitution
	col.Density = opts.Density

	o := New(world, scaling, engine.BodyDesc{
		Kind:        engine.Dynamic,
		Translation: opts.Translation,
		Rotation:    opts.Rotation,
		Sleeping:    opts.Sleeping,
	}, col, opts.Color)
	o.Radius = opts.Radius
	return o
}

type BallOptions struct {
	Radius      float64
	Color       color.RGBA
	Translation cp.Vector
	Restitution float64
	Density     float64
	Sleeping    bool
}

func DefaultBallOptions(radius float64) BallOptions {
	return BallOptions{
		Radius:      radius,
		Color:       Ink,
		Restitution: 0.5,
		Density:     1,
		Sleeping:    true,
	}
}

// NewBall creates a dynamic ball.
func NewBall(world *engine.World, scaling float64, opts BallOptions) *PhysicsObject {
	col := engine.BallCollider(opts.Radius)
	col.Restitution = opts.Restitution
	col.Density = opts.Density

	return New(world, scaling, engine.BodyDesc{
		Kind:        engine.Dynamic,
		Translation: opts.Translation,
		Sleeping:    opts.Sleeping,
	}, col, opts.Color)
}

type BraceOptions struct {
	// Scale converts the outline's unit coordinates to meters.
	Scale       float64
	Color       color.RGBA
	Translation cp.Vector
	Rotation    float64
	Restitution float64
	Density     float64
	Sleeping    bool
}

func DefaultBraceOptions(scale float64) BraceOptions {
	return BraceOptions{
		Scale:       scale,
		Color:       Ink,
		Restitution: 0.5,
		Density:     1,
		Sleeping:    true,
	}
}

// NewBrace creates a dynamic body shaped like the convex hull of the brace
// outline. It returns nil when the scale collapses the outline.
func NewBrace(world *engine.World, scaling float64, opts BraceOptions) *PhysicsObject {
	col, ok := engine.HullCollider(assets.BraceOutline(opts.Scale))
	if !ok {
		return nil
	}
	col.Restitution = opts.Restitution
	col.Density = opts.Density

	return New(world, scaling, engine.BodyDesc{
		Kind:        engine.Dynamic,
		Translation: opts.Translation,
		Rotation:    opts.Rotation,
		Sleeping:    opts.Sleeping,
	}, col, opts.Color)
}
