package geom

import (
	"math"

	"github.com/matzehuels/curveplot/pkg/errors"
)

// Vec is a pair of per-axis factors.
type Vec struct {
	X, Y float64
}

// PixelRect is a rectangle in pixel space. X and Y locate its origin (the
// pixel position of the source minimum corner).
type PixelRect struct {
	X, Y float64
	W, H float64
}

// Canvas returns the full w×h pixel rectangle anchored at the origin.
func Canvas(w, h int) PixelRect {
	return PixelRect{W: float64(w), H: float64(h)}
}

// Mapper converts plane coordinates to fractional pixel coordinates.
type Mapper struct {
	Scale  Vec
	Offset Vec
}

// NewMapper maps src onto target:
//
//	scale  = (target.W / src.X.Span(), target.H / src.Y.Span())
//	offset = (target.X - src.X.Min*scale.X, target.Y - src.Y.Min*scale.Y)
//
// A zero-width or zero-height source fails with INVALID_CONFIG.
func NewMapper(src Bounds2D, target PixelRect) (Mapper, error) {
	sx, sy := src.X.Span(), src.Y.Span()
	if !(sx > 0) || !(sy > 0) {
		return Mapper{}, errors.Config("cannot map degenerate bounds [%v, %v]x[%v, %v]", src.X.Min, src.X.Max, src.Y.Min, src.Y.Max)
	}
	scale := Vec{X: target.W / sx, Y: target.H / sy}
	return Mapper{
		Scale:  scale,
		Offset: Vec{X: target.X - src.X.Min*scale.X, Y: target.Y - src.Y.Min*scale.Y},
	}, nil
}

// ViewMapper maps the view rectangle onto a w×h canvas.
func ViewMapper(view Bounds2D, w, h int) (Mapper, error) {
	return NewMapper(view, Canvas(w, h))
}

// Map returns the pixel position of (x, y).
func (m Mapper) Map(x, y float64) (float64, float64) {
	return x*m.Scale.X + m.Offset.X, y*m.Scale.Y + m.Offset.Y
}

// MapX maps a single x coordinate.
func (m Mapper) MapX(x float64) float64 { return x*m.Scale.X + m.Offset.X }

// MapY maps a single y coordinate.
func (m Mapper) MapY(y float64) float64 { return y*m.Scale.Y + m.Offset.Y }

// PixelRectFor returns the pixel rectangle that curve occupies when view is
// mapped onto a w×h canvas. Mapping through NewMapper(curve, PixelRectFor(...))
// is therefore equivalent to mapping through the view itself, while keeping
// the curve's own bounds as the source.
func PixelRectFor(curve, view Bounds2D, w, h int) (PixelRect, error) {
	vm, err := ViewMapper(view, w, h)
	if err != nil {
		return PixelRect{}, err
	}
	x, y := vm.Map(curve.X.Min, curve.Y.Min)
	return PixelRect{
		X: x,
		Y: y,
		W: curve.X.Span() * vm.Scale.X,
		H: curve.Y.Span() * vm.Scale.Y,
	}, nil
}

// IntersectionSize returns the pixel extent of the overlap between curve and
// view on a w×h canvas: overlapSpan / viewSpan * size per axis. It fails with
// GEOMETRY when the rectangles do not meet.
func IntersectionSize(curve, view Bounds2D, w, h int) (float64, float64, error) {
	if !curve.Intersects(view) {
		return 0, 0, errors.Geometry("definition interval not in draw interval: [%v, %v]x[%v, %v] vs [%v, %v]x[%v, %v]",
			curve.X.Min, curve.X.Max, curve.Y.Min, curve.Y.Max,
			view.X.Min, view.X.Max, view.Y.Min, view.Y.Max)
	}
	if !(view.X.Span() > 0) || !(view.Y.Span() > 0) {
		return 0, 0, errors.Config("cannot size against degenerate view")
	}
	ov, _ := curve.Overlap(view)
	return ov.X.Span() / view.X.Span() * float64(w),
		ov.Y.Span() / view.Y.Span() * float64(h),
		nil
}

// GridCount rounds a pixel extent to a sample count, never below one.
func GridCount(extent float64) int {
	n := int(math.Round(extent))
	if n < 1 {
		return 1
	}
	return n
}
