package assets

import "github.com/jakecoffman/cp/v2"

// Silhouette is a two-layer drawing in pixels. Background is filled first,
// Lines on top.
type Silhouette struct {
	// Hotspot is the pixel that sits on the pointer position.
	Hotspot    cp.Vector
	Background []cp.Vector
	Lines      [][]cp.Vector
}

const lineWidth = 2.5

// HandScaling is the pixels-per-meter the hands are drawn for.
const HandScaling = 50

var (
	HandDefault = newHand(0)
	HandPressed = newHand(10)
)

// newHand builds a pointing hand with the index fingertip lowered by bend
// pixels.
func newHand(bend float64) Silhouette {
	tip := []cp.Vector{
		{X: 47, Y: 58}, {X: 48, Y: 50}, {X: 51, Y: 46}, {X: 55, Y: 44},
		{X: 59, Y: 46}, {X: 62, Y: 50}, {X: 63, Y: 58},
	}
	for i := range tip {
		tip[i].Y += bend
	}

	outline := append(tip, []cp.Vector{
		{X: 63, Y: 88},
		{X: 66, Y: 84}, {X: 71, Y: 83}, {X: 76, Y: 86}, {X: 77, Y: 92},
		{X: 80, Y: 89}, {X: 85, Y: 89}, {X: 89, Y: 93}, {X: 90, Y: 99},
		{X: 93, Y: 97}, {X: 98, Y: 98}, {X: 101, Y: 102}, {X: 101, Y: 112},
		{X: 100, Y: 126}, {X: 94, Y: 138}, {X: 84, Y: 146}, {X: 62, Y: 148},
		{X: 48, Y: 142}, {X: 40, Y: 132}, {X: 34, Y: 118}, {X: 28, Y: 106},
		{X: 25, Y: 98}, {X: 27, Y: 93}, {X: 32, Y: 93}, {X: 38, Y: 100},
		{X: 47, Y: 108},
	}...)

	lines := Stroke(outline, lineWidth, true)
	creases := [][2]cp.Vector{
		{{X: 63, Y: 96}, {X: 63, Y: 108}},
		{{X: 77, Y: 100}, {X: 77, Y: 110}},
		{{X: 90, Y: 106}, {X: 90, Y: 114}},
	}
	for _, c := range creases {
		lines = append(lines, segmentQuad(c[0], c[1], lineWidth))
	}

	return Silhouette{
		Hotspot:    cp.Vector{X: 55, Y: 48},
		Background: outline,
		Lines:      lines,
	}
}

// Stroke turns a polyline into one quad per segment.
func Stroke(points []cp.Vector, width float64, closed bool) [][]cp.Vector {
	n := len(points)
	if n < 2 {
		return nil
	}
	segments := n - 1
	if closed {
		segments = n
	}
	quads := make([][]cp.Vector, 0, segments)
	for i := 0; i < segments; i++ {
		quads = append(quads, segmentQuad(points[i], points[(i+1)%n], width))
	}
	return quads
}

func segmentQuad(a, b cp.Vector, width float64) []cp.Vector {
	d := b.Sub(a)
	if d.LengthSq() == 0 {
		return []cp.Vector{a, a, a, a}
	}
	n := d.Normalize().Perp().Mult(width / 2)
	// extend the ends so neighbouring quads overlap at the joints
	e := d.Normalize().Mult(width / 2)
	return []cp.Vector{a.Sub(e).Add(n), b.Add(e).Add(n), b.Add(e).Sub(n), a.Sub(e).Sub(n)}
}
