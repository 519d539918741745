// Package walls fences the viewport so objects stay on screen.
package walls

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/collision"
	"github.com/san-kum/glyphfall/internal/engine"
)

const DefaultThickness = 8

// Restitution is 1 so a bounce keeps the object's own restitution.
const Restitution = 1

// BuildWalls attaches four static boxes to the world's ground just outside
// a width by height pixel viewport. Each wall is thickness meters deep.
// Calling it twice builds a second set.
func BuildWalls(world *engine.World, width, height int, scaling, thickness float64) []*engine.Collider {
	w := float64(width) / scaling
	h := float64(height) / scaling
	t := thickness

	boxes := []struct {
		hx, hy float64
		at     cp.Vector
	}{
		{t / 2, h, cp.Vector{X: -t / 2, Y: h / 2}},
		{t / 2, h, cp.Vector{X: w + t/2, Y: h / 2}},
		{w, t / 2, cp.Vector{X: w / 2, Y: -t / 2}},
		{w, t / 2, cp.Vector{X: w / 2, Y: h + t/2}},
	}

	out := make([]*engine.Collider, 0, len(boxes))
	for _, b := range boxes {
		desc := engine.BoxCollider(b.hx, b.hy)
		desc.Translation = b.at
		desc.Restitution = Restitution
		desc.Group = collision.Walls
		out = append(out, world.CreateCollider(desc, nil))
	}
	return out
}
