package engine

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/collision"
)

type ShapeKind int

const (
	ShapeBall ShapeKind = iota
	ShapeBox
	ShapeConvexPolygon
	ShapeSegment
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBall:
		return "ball"
	case ShapeBox:
		return "box"
	case ShapeConvexPolygon:
		return "convex_polygon"
	case ShapeSegment:
		return "segment"
	default:
		return fmt.Sprintf("shape(%d)", int(k))
	}
}

// Geometry is the closed set of collider shapes: Ball, Box, ConvexPolygon
// and Segment.
type Geometry interface {
	Kind() ShapeKind
	area() float64
}

type Ball struct {
	Radius float64
}

func (Ball) Kind() ShapeKind { return ShapeBall }
func (g Ball) area() float64 { return math.Pi * g.Radius * g.Radius }

// Box is an axis-aligned rectangle in body space.
type Box struct {
	HalfExtents cp.Vector
}

func (Box) Kind() ShapeKind { return ShapeBox }
func (g Box) area() float64 { return 4 * g.HalfExtents.X * g.HalfExtents.Y }

func (g Box) vertices() []cp.Vector {
	hx, hy := g.HalfExtents.X, g.HalfExtents.Y
	return []cp.Vector{{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}}
}

// ConvexPolygon holds vertices in body space, in winding order.
type ConvexPolygon struct {
	Vertices []cp.Vector
}

func (ConvexPolygon) Kind() ShapeKind { return ShapeConvexPolygon }
func (g ConvexPolygon) area() float64 { return polygonArea(g.Vertices) }

// Segment is a capsule between A and B.
type Segment struct {
	A, B   cp.Vector
	Radius float64
}

func (Segment) Kind() ShapeKind { return ShapeSegment }
func (g Segment) area() float64 {
	return g.A.Distance(g.B)*2*g.Radius + math.Pi*g.Radius*g.Radius
}

// ColliderDesc describes a collider before it is attached.
type ColliderDesc struct {
	Shape Geometry
	// Translation offsets the shape from its body's origin.
	Translation cp.Vector
	Restitution float64
	Density     float64
	Friction    float64
	Group       collision.Group
	Disabled    bool
}

// BallCollider returns a ball descriptor with engine defaults.
func BallCollider(radius float64) ColliderDesc {
	return newColliderDesc(Ball{Radius: radius})
}

// BoxCollider returns a box descriptor from half extents.
func BoxCollider(hx, hy float64) ColliderDesc {
	return newColliderDesc(Box{HalfExtents: cp.Vector{X: hx, Y: hy}})
}

// SegmentCollider returns a capsule descriptor.
func SegmentCollider(a, b cp.Vector, radius float64) ColliderDesc {
	return newColliderDesc(Segment{A: a, B: b, Radius: radius})
}

// HullCollider returns a convex polygon descriptor from the convex hull of
// points. It reports false when the points span no area.
func HullCollider(points []cp.Vector) (ColliderDesc, bool) {
	hull := ConvexHull(points)
	if len(hull) < 3 {
		return ColliderDesc{}, false
	}
	return newColliderDesc(ConvexPolygon{Vertices: hull}), true
}

func newColliderDesc(g Geometry) ColliderDesc {
	return ColliderDesc{
		Shape:    g,
		Density:  1,
		Friction: 0.5,
		Group:    collision.Object,
	}
}

// Collider is a handle to a shape attached to a body.
type Collider struct {
	body    *Body
	shape   *cp.Shape
	geom    Geometry
	offset  cp.Vector
	group   collision.Group
	filter  cp.ShapeFilter
	elastic float64
	enabled bool
}

func (c *Collider) Body() *Body { return c.body }

// Shape returns the collider geometry in body space.
func (c *Collider) Shape() Geometry { return c.geom }

func (c *Collider) Offset() cp.Vector { return c.offset }

func (c *Collider) Group() collision.Group { return c.group }

func (c *Collider) Enabled() bool { return c.enabled }

// Filter returns the engine filter currently in effect.
func (c *Collider) Filter() cp.ShapeFilter { return c.filter }

func (c *Collider) Restitution() float64 { return c.elastic }

// SetEnabled toggles participation in collisions. A disabled collider keeps
// its geometry but accepts no contacts.
func (c *Collider) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if enabled {
		c.filter = collision.Filter(c.group)
	} else {
		c.filter = disabledFilter
	}
	c.shape.SetFilter(c.filter)
}

// disabledFilter belongs to no category and accepts none.
var disabledFilter = cp.ShapeFilter{}

func newShape(body *cp.Body, g Geometry, offset cp.Vector) (*cp.Shape, Geometry) {
	switch g := g.(type) {
	case Ball:
		return cp.NewCircle(body, g.Radius, offset), g
	case Box:
		verts := g.vertices()
		return cp.NewPolyShape(body, len(verts), verts, cp.NewTransformTranslate(offset), 0), g
	case ConvexPolygon:
		hull := ConvexHull(g.Vertices)
		return cp.NewPolyShape(body, len(hull), hull, cp.NewTransformTranslate(offset), 0), ConvexPolygon{Vertices: hull}
	case Segment:
		a, b := g.A.Add(offset), g.B.Add(offset)
		return cp.NewSegment(body, a, b, g.Radius), g
	default:
		panic(fmt.Sprintf("engine: unsupported geometry %T", g))
	}
}
