package render

import "github.com/jakecoffman/cp/v2"

// Triangulate splits a simple polygon into triangles by ear clipping. The
// result is a flat list of vertices, three per triangle, each triangle wound
// the same way as the input. Degenerate input yields nil.
func Triangulate(points []cp.Vector) []cp.Vector {
	n := len(points)
	if n < 3 {
		return nil
	}
	ccw := signedArea(points) > 0

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([]cp.Vector, 0, 3*(n-2))

	for guard := 0; len(idx) > 3 && guard < n*n; guard++ {
		clipped := false
		for i := range idx {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			a, b, c := points[prev], points[cur], points[next]
			if !convex(a, b, c, ccw) {
				continue
			}
			if anyInside(points, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, a, b, c)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Self-intersecting or numerically flat; fan what remains.
			break
		}
	}
	for i := 1; i+1 < len(idx); i++ {
		tris = append(tris, points[idx[0]], points[idx[i]], points[idx[i+1]])
	}
	return tris
}

func signedArea(points []cp.Vector) float64 {
	var sum float64
	for i := range points {
		sum += points[i].Cross(points[(i+1)%len(points)])
	}
	return sum / 2
}

func convex(a, b, c cp.Vector, ccw bool) bool {
	cross := b.Sub(a).Cross(c.Sub(b))
	if ccw {
		return cross > 0
	}
	return cross < 0
}

func anyInside(points []cp.Vector, idx []int, ia, ib, ic int) bool {
	a, b, c := points[ia], points[ib], points[ic]
	for _, j := range idx {
		if j == ia || j == ib || j == ic {
			continue
		}
		if inTriangle(points[j], a, b, c) {
			return true
		}
	}
	return false
}

func inTriangle(p, a, b, c cp.Vector) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}
