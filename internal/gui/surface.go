package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/render"
)

// Surface fills shapes into the current raylib frame. Calls must happen
// between BeginDrawing and EndDrawing.
type Surface struct {
	width, height int
	background    rl.Color
}

func NewSurface(width, height int, background color.RGBA) *Surface {
	return &Surface{width: width, height: height, background: toColor(background)}
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Resize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Surface) Clear() { rl.ClearBackground(s.background) }

func (s *Surface) FillCircle(center cp.Vector, radius float64, fill color.RGBA) {
	rl.DrawCircleV(toVector2(center), float32(radius), toColor(fill))
}

// FillPolygon triangulates the outline. raylib culls triangles that are
// not counter-clockwise on screen, so each one is flipped as needed.
func (s *Surface) FillPolygon(points []cp.Vector, fill color.RGBA) {
	tris := render.Triangulate(points)
	c := toColor(fill)
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, d := tris[i], tris[i+1], tris[i+2]
		if b.Sub(a).Cross(d.Sub(a)) > 0 {
			b, d = d, b
		}
		rl.DrawTriangle(toVector2(a), toVector2(b), toVector2(d), c)
	}
}

func toVector2(v cp.Vector) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
