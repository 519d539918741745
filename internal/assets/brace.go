package assets

import "github.com/jakecoffman/cp/v2"

// braceOutline is a curly brace, about 0.9m wide and 2.8m tall, centered
// on its origin.
var braceOutline = []cp.Vector{
	{X: -0.4485, Y: -0.12}, {X: -0.3908, Y: -0.1238}, {X: -0.3406, Y: -0.135},
	{X: -0.2973, Y: -0.1534}, {X: -0.2606, Y: -0.1788}, {X: -0.2298, Y: -0.211},
	{X: -0.2047, Y: -0.2498}, {X: -0.1847, Y: -0.2949}, {X: -0.1693, Y: -0.3462},
	{X: -0.1582, Y: -0.4035}, {X: -0.1508, Y: -0.4665}, {X: -0.1467, Y: -0.5351},
	{X: -0.1455, Y: -0.609}, {X: -0.1455, Y: -0.873}, {X: -0.1432, Y: -0.9566},
	{X: -0.1362, Y: -1.0334}, {X: -0.124, Y: -1.1033}, {X: -0.1063, Y: -1.1661},
	{X: -0.0827, Y: -1.2219}, {X: -0.0528, Y: -1.2705}, {X: -0.0162, Y: -1.3119},
	{X: 0.0274, Y: -1.3459}, {X: 0.0786, Y: -1.3725}, {X: 0.1375, Y: -1.3916},
	{X: 0.2047, Y: -1.4031}, {X: 0.2805, Y: -1.407}, {X: 0.3975, Y: -1.407},
	{X: 0.3975, Y: -1.179}, {X: 0.3525, Y: -1.179}, {X: 0.3035, Y: -1.1778},
	{X: 0.261, Y: -1.1738}, {X: 0.2246, Y: -1.1667}, {X: 0.1939, Y: -1.1558},
	{X: 0.1684, Y: -1.1407}, {X: 0.1478, Y: -1.1209}, {X: 0.1315, Y: -1.0959},
	{X: 0.1192, Y: -1.0652}, {X: 0.1104, Y: -1.0284}, {X: 0.1046, Y: -0.9849},
	{X: 0.1015, Y: -0.9343}, {X: 0.1005, Y: -0.876}, {X: 0.1005, Y: -0.66},
	{X: 0.0988, Y: -0.5638}, {X: 0.0935, Y: -0.4772}, {X: 0.0844, Y: -0.3995},
	{X: 0.0712, Y: -0.3302}, {X: 0.0538, Y: -0.2686}, {X: 0.0319, Y: -0.2141},
	{X: 0.0054, Y: -0.1661}, {X: -0.0261, Y: -0.1238}, {X: -0.0627, Y: -0.0867},
	{X: -0.1047, Y: -0.0541}, {X: -0.1522, Y: -0.0254}, {X: -0.2055, Y: -0},
	{X: -0.1522, Y: 0.0254}, {X: -0.1047, Y: 0.0541}, {X: -0.0627, Y: 0.0867},
	{X: -0.0261, Y: 0.1238}, {X: 0.0054, Y: 0.1661}, {X: 0.0319, Y: 0.2141},
	{X: 0.0538, Y: 0.2686}, {X: 0.0712, Y: 0.3302}, {X: 0.0844, Y: 0.3995},
	{X: 0.0935, Y: 0.4772}, {X: 0.0988, Y: 0.5638}, {X: 0.1005, Y: 0.66},
	{X: 0.1005, Y: 0.876}, {X: 0.1015, Y: 0.9343}, {X: 0.1046, Y: 0.9849},
	{X: 0.1104, Y: 1.0284}, {X: 0.1192, Y: 1.0652}, {X: 0.1315, Y: 1.0959},
	{X: 0.1478, Y: 1.1209}, {X: 0.1684, Y: 1.1407}, {X: 0.1939, Y: 1.1558},
	{X: 0.2246, Y: 1.1667}, {X: 0.261, Y: 1.1738}, {X: 0.3035, Y: 1.1778},
	{X: 0.3525, Y: 1.179}, {X: 0.3975, Y: 1.179}, {X: 0.3975, Y: 1.407},
	{X: 0.2805, Y: 1.407}, {X: 0.2047, Y: 1.4031}, {X: 0.1375, Y: 1.3916},
	{X: 0.0786, Y: 1.3725}, {X: 0.0274, Y: 1.3459}, {X: -0.0162, Y: 1.3119},
	{X: -0.0528, Y: 1.2705}, {X: -0.0827, Y: 1.2219}, {X: -0.1063, Y: 1.1661},
	{X: -0.124, Y: 1.1033}, {X: -0.1362, Y: 1.0334}, {X: -0.1432, Y: 0.9566},
	{X: -0.1455, Y: 0.873}, {X: -0.1455, Y: 0.609}, {X: -0.1467, Y: 0.5351},
	{X: -0.1508, Y: 0.4665}, {X: -0.1582, Y: 0.4035}, {X: -0.1693, Y: 0.3462},
	{X: -0.1847, Y: 0.2949}, {X: -0.2047, Y: 0.2497}, {X: -0.2298, Y: 0.211},
	{X: -0.2606, Y: 0.1788}, {X: -0.2973, Y: 0.1534}, {X: -0.3406, Y: 0.135},
	{X: -0.3908, Y: 0.1238}, {X: -0.4485, Y: 0.12},
}

// BraceOutline returns the brace outline scaled by s.
func BraceOutline(s float64) []cp.Vector {
	out := make([]cp.Vector, len(braceOutline))
	for i, v := range braceOutline {
		out[i] = v.Mult(s)
	}
	return out
}
