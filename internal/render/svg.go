package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jakecoffman/cp/v2"
)

// SVGSurface records fills as SVG elements.
type SVGSurface struct {
	width, height int
	background    *color.RGBA
	body          strings.Builder
	shapes        int
}

func NewSVGSurface(width, height int) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

// SetBackground paints a full-size rect under every frame.
func (s *SVGSurface) SetBackground(c color.RGBA) {
	s.background = &c
}

func (s *SVGSurface) Size() (int, int) { return s.width, s.height }

func (s *SVGSurface) Clear() {
	s.body.Reset()
	s.shapes = 0
}

// Shapes is the number of elements drawn since the last Clear.
func (s *SVGSurface) Shapes() int { return s.shapes }

func (s *SVGSurface) FillCircle(center cp.Vector, radius float64, fill color.RGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n",
		center.X, center.Y, radius, fillAttrs(fill))
	s.shapes++
}

func (s *SVGSurface) FillPolygon(points []cp.Vector, fill color.RGBA) {
	if len(points) < 3 {
		return
	}
	s.body.WriteString(`<polygon points="`)
	for i, p := range points {
		if i > 0 {
			s.body.WriteByte(' ')
		}
		fmt.Fprintf(&s.body, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(&s.body, `"%s/>`+"\n", fillAttrs(fill))
	s.shapes++
}

// String returns the complete document.
func (s *SVGSurface) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.width, s.height, s.width, s.height))
	if s.background != nil {
		sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", Hex(*s.background)))
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func fillAttrs(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf(` fill="%s"`, Hex(c))
	}
	return fmt.Sprintf(` fill="%s" fill-opacity="%.3f"`, Hex(c), float64(c.A)/255)
}
