// Package geom maps a continuous mathematical plane onto discrete pixels.
//
// An [Interval] is a closed range with Min < Max; a [Bounds2D] pairs one per
// axis. A [Mapper] is the affine transform
//
//	px = x*Scale.X + Offset.X
//	py = y*Scale.Y + Offset.Y
//
// built from a source rectangle in the plane and a target [PixelRect]. Every
// drawing path in curveplot goes through a Mapper, so grid lines, parametric
// samples and implicit grid points agree to the pixel.
//
// When a curve carries its own bounds, [PixelRectFor] places those bounds
// inside the canvas pixel frame and [IntersectionSize] measures how many
// pixels the overlap with the canvas spans, which sets the implicit sampling
// grid resolution.
//
// Pixel rows grow with y: row 0 holds the minimum y of the view. Sinks flip
// the buffer so that images come out with mathematical "up" at the top.
package geom
