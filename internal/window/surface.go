package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/render"
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Surface draws into whichever ebiten image was last handed to Target.
type Surface struct {
	target        *ebiten.Image
	width, height int
	background    color.RGBA

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewSurface(width, height int, background color.RGBA) *Surface {
	return &Surface{width: width, height: height, background: background}
}

func (s *Surface) Target(img *ebiten.Image) { s.target = img }

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Resize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Surface) Clear() {
	if s.target != nil {
		s.target.Fill(s.background)
	}
}

func (s *Surface) FillCircle(center cp.Vector, radius float64, fill color.RGBA) {
	if s.target == nil {
		return
	}
	vector.DrawFilledCircle(s.target, float32(center.X), float32(center.Y), float32(radius), fill, true)
}

// FillPolygon uploads the ear-clipped triangles of the outline in one
// DrawTriangles call.
func (s *Surface) FillPolygon(points []cp.Vector, fill color.RGBA) {
	if s.target == nil {
		return
	}
	tris := render.Triangulate(points)
	if len(tris) == 0 {
		return
	}

	r := float32(fill.R) / 0xff
	g := float32(fill.G) / 0xff
	b := float32(fill.B) / 0xff
	a := float32(fill.A) / 0xff

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	for i, p := range tris {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
		s.indices = append(s.indices, uint16(i))
	}
	s.target.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
