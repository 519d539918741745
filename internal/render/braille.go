package render

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/jakecoffman/cp/v2"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// EraseLuminance is the brightness above which a fill clears dots instead
// of setting them, so light fills cut holes into whatever is beneath.
const EraseLuminance = 0.85

// BrailleSurface is a terminal grid of braille cells. Each cell holds 2x4
// dots, so the pixel size is (Cols*2) x (Rows*4).
type BrailleSurface struct {
	Cols, Rows int
	Grid       [][]rune
	// Tint holds the color of the last fill that set a dot in each cell.
	Tint [][]color.RGBA
}

func NewBrailleSurface(cols, rows int) *BrailleSurface {
	b := &BrailleSurface{Cols: cols, Rows: rows}
	b.Grid = make([][]rune, rows)
	b.Tint = make([][]color.RGBA, rows)
	for i := range b.Grid {
		b.Grid[i] = make([]rune, cols)
		b.Tint[i] = make([]color.RGBA, cols)
	}
	b.Clear()
	return b
}

func (b *BrailleSurface) Size() (int, int) { return b.Cols * 2, b.Rows * 4 }

func (b *BrailleSurface) Clear() {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
			b.Tint[i][j] = color.RGBA{}
		}
	}
}

// Set turns on the dot at pixel (x, y).
func (b *BrailleSurface) Set(x, y int, c color.RGBA) {
	row, col, bit, ok := b.locate(x, y)
	if !ok {
		return
	}
	b.Grid[row][col] |= bit
	b.Tint[row][col] = c
}

// Unset clears the dot at pixel (x, y).
func (b *BrailleSurface) Unset(x, y int) {
	row, col, bit, ok := b.locate(x, y)
	if !ok {
		return
	}
	b.Grid[row][col] &^= bit
}

// IsSet reports whether the dot at pixel (x, y) is on.
func (b *BrailleSurface) IsSet(x, y int) bool {
	row, col, bit, ok := b.locate(x, y)
	return ok && b.Grid[row][col]&bit != 0
}

func (b *BrailleSurface) locate(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= b.Cols || row >= b.Rows {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

func (b *BrailleSurface) plot(x, y int, c color.RGBA) {
	if Luminance(c) > EraseLuminance {
		b.Unset(x, y)
		return
	}
	b.Set(x, y, c)
}

func (b *BrailleSurface) FillCircle(center cp.Vector, radius float64, fill color.RGBA) {
	w, h := b.Size()
	x0 := max(0, int(math.Floor(center.X-radius)))
	x1 := min(w-1, int(math.Ceil(center.X+radius)))
	y0 := max(0, int(math.Floor(center.Y-radius)))
	y1 := min(h-1, int(math.Ceil(center.Y+radius)))
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			if dx*dx+dy*dy <= r2 {
				b.plot(x, y, fill)
			}
		}
	}
}

// FillPolygon fills with the even-odd rule, sampling pixel centers.
func (b *BrailleSurface) FillPolygon(points []cp.Vector, fill color.RGBA) {
	if len(points) < 3 {
		return
	}
	w, h := b.Size()
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(h-1, int(math.Ceil(maxY)))

	xs := make([]float64, 0, 8)
	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := range points {
			a, c := points[i], points[(i+1)%len(points)]
			if (a.Y <= sy) == (c.Y <= sy) {
				continue
			}
			t := (sy - a.Y) / (c.Y - a.Y)
			xs = append(xs, a.X+t*(c.X-a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := max(0, int(math.Ceil(xs[i]-0.5)))
			x1 := min(w-1, int(math.Floor(xs[i+1]-0.5)))
			for x := x0; x <= x1; x++ {
				b.plot(x, y, fill)
			}
		}
	}
}

func (b *BrailleSurface) String() string {
	var sb strings.Builder
	for i, row := range b.Grid {
		sb.WriteString(string(row))
		if i < len(b.Grid)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
