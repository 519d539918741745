// Package interp blends simulation snapshots for rendering between fixed steps.
package interp

import (
	"math"

	"github.com/jakecoffman/cp/v2"
)

// LerpVector returns a + (b-a)*alpha. Alpha outside [0, 1] extrapolates.
func LerpVector(a, b cp.Vector, alpha float64) cp.Vector {
	return cp.Vector{
		X: a.X + (b.X-a.X)*alpha,
		Y: a.Y + (b.Y-a.Y)*alpha,
	}
}

// LerpAngle interpolates from a to b along the shortest arc.
func LerpAngle(a, b, alpha float64) float64 {
	return a + NormalizeAngle(b-a)*alpha
}

// NormalizeAngle maps x into (-π, π].
func NormalizeAngle(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x <= -math.Pi {
		x += 2 * math.Pi
	} else if x > math.Pi {
		x -= 2 * math.Pi
	}
	return x
}
