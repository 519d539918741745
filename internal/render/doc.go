// Package render paints frames onto pixel surfaces.
//
// A [Canvas] is the raw surface: it only fills circles and polygons in
// pixel coordinates. A [Context] sits on top and adds what a 2D drawing API
// offers: a save/restore transform stack, rounded rectangles and multi-part
// paths. Surfaces in this package:
//
//   - [SVGSurface]: accumulates an SVG document
//   - [BrailleSurface]: terminal grid, 2x4 dots per cell
//
// Window surfaces live with their hosts (gui, window).
package render
