package render

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp/v2"
)

type Canvas interface {
	Size() (width, height int)
	Clear()
	FillCircle(center cp.Vector, radius float64, fill color.RGBA)
	FillPolygon(points []cp.Vector, fill color.RGBA)
}

// Context draws onto a Canvas through an affine transform stack.
type Context struct {
	canvas    Canvas
	transform cp.Transform
	stack     []cp.Transform
	fill      color.RGBA
}

func NewContext(c Canvas) *Context {
	return &Context{
		canvas:    c,
		transform: cp.NewTransformIdentity(),
		fill:      color.RGBA{A: 255},
	}
}

func (c *Context) Canvas() Canvas { return c.canvas }

// Clear wipes the surface and resets the transform stack.
func (c *Context) Clear() {
	c.canvas.Clear()
	c.transform = cp.NewTransformIdentity()
	c.stack = c.stack[:0]
}

func (c *Context) Save() {
	c.stack = append(c.stack, c.transform)
}

// Restore pops the last saved transform. Unbalanced calls are ignored.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.transform = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Context) Translate(x, y float64) {
	c.transform = c.transform.Mult(cp.NewTransformTranslate(cp.Vector{X: x, Y: y}))
}

func (c *Context) Rotate(radians float64) {
	c.transform = c.transform.Mult(cp.NewTransformRotate(radians))
}

func (c *Context) Scale(sx, sy float64) {
	c.transform = c.transform.Mult(cp.NewTransformScale(sx, sy))
}

func (c *Context) SetFill(fill color.RGBA) {
	c.fill = fill
}

// Point maps p through the current transform.
func (c *Context) Point(p cp.Vector) cp.Vector {
	return c.transform.Point(p)
}

// FillCircle scales radius by the transform's mean linear scale. Uneven
// scales still draw a circle.
func (c *Context) FillCircle(center cp.Vector, radius float64) {
	c.canvas.FillCircle(c.transform.Point(center), radius*c.linearScale(), c.fill)
}

func (c *Context) linearScale() float64 {
	x := c.transform.Vect(cp.Vector{X: 1})
	y := c.transform.Vect(cp.Vector{Y: 1})
	return math.Sqrt(math.Abs(x.Cross(y)))
}

func (c *Context) FillPolygon(points []cp.Vector) {
	if len(points) < 3 {
		return
	}
	out := make([]cp.Vector, len(points))
	for i, p := range points {
		out[i] = c.transform.Point(p)
	}
	c.canvas.FillPolygon(out, c.fill)
}

// FillRoundRect fills the rectangle at (x, y) of size w by h with corners
// rounded by r pixels.
func (c *Context) FillRoundRect(x, y, w, h, r float64) {
	c.FillPolygon(RoundRect(x, y, w, h, r))
}

// FillPath fills every subpath translated by offset.
func (c *Context) FillPath(subpaths [][]cp.Vector, offset cp.Vector) {
	c.Save()
	c.Translate(offset.X, offset.Y)
	for _, sp := range subpaths {
		c.FillPolygon(sp)
	}
	c.Restore()
}

const cornerSegments = 4

// RoundRect returns the outline of a rounded rectangle. The radius is
// clamped to half the shorter side.
func RoundRect(x, y, w, h, r float64) []cp.Vector {
	r = math.Max(0, math.Min(r, math.Min(math.Abs(w), math.Abs(h))/2))
	if r == 0 {
		return []cp.Vector{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	}

	corners := []struct {
		cx, cy, start float64
	}{
		{x + w - r, y + r, -math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}
	pts := make([]cp.Vector, 0, 4*(cornerSegments+1))
	for _, k := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := k.start + float64(i)*(math.Pi/2)/cornerSegments
			pts = append(pts, cp.Vector{X: k.cx + r*math.Cos(a), Y: k.cy + r*math.Sin(a)})
		}
	}
	return pts
}
