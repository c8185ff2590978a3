package curve

import (
	"math"

	"github.com/matzehuels/curveplot/pkg/geom"
)

// Function is the graph y = F(x) + Offset.Y for x in Domain, shifted by
// Offset.X horizontally.
type Function struct {
	Domain  geom.Interval
	Bounds  geom.Bounds2D
	F       func(x float64) float64
	Samples int
	Offset  geom.Point
}

// ToParametric returns the curve (t + Offset.X, F(t) + Offset.Y).
func (f Function) ToParametric() (*Parametric, error) {
	fn, off := f.F, f.Offset
	var x, y func(float64) float64
	if fn != nil {
		x = func(t float64) float64 { return t + off.X }
		y = func(t float64) float64 { return fn(t) + off.Y }
	}
	return NewParametric(f.Domain, f.Bounds, x, y, f.Samples)
}

// Polar is the curve r = R(θ) for θ in Angle, translated by Offset.
type Polar struct {
	Angle   geom.Interval
	Bounds  geom.Bounds2D
	R       func(theta float64) float64
	Samples int
	Offset  geom.Point
}

// ToParametric returns the curve (R(θ)cos θ + Offset.X, R(θ)sin θ + Offset.Y).
func (p Polar) ToParametric() (*Parametric, error) {
	r, off := p.R, p.Offset
	var x, y func(float64) float64
	if r != nil {
		x = func(t float64) float64 { return r(t)*math.Cos(t) + off.X }
		y = func(t float64) float64 { return r(t)*math.Sin(t) + off.Y }
	}
	return NewParametric(p.Angle, p.Bounds, x, y, p.Samples)
}
