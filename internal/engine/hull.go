package engine

import "github.com/jakecoffman/cp/v2"

// ConvexHull returns the hull of points in counter-clockwise order (y up),
// without collinear or repeated points. points is not modified.
func ConvexHull(points []cp.Vector) []cp.Vector {
	if len(points) == 0 {
		return nil
	}
	verts := append([]cp.Vector(nil), points...)
	n := cp.ConvexHull(len(verts), verts, nil, 0)
	return verts[:n]
}

func polygonArea(verts []cp.Vector) float64 {
	n := len(verts)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := range verts {
		sum += verts[i].Cross(verts[(i+1)%n])
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}
