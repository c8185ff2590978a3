package curve

import (
	"github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/geom"
)

// Curve is a drawable curve: a *Parametric or an *Implicit.
type Curve interface {
	// Domain returns the rectangle of the plane the curve is defined on.
	Domain() geom.Bounds2D
	// Validate reports an INVALID_CONFIG error for malformed curves.
	Validate() error

	curve()
}

// Parametric is the curve (X(t), Y(t)) for t in Param.
type Parametric struct {
	Param   geom.Interval
	Bounds  geom.Bounds2D
	X, Y    func(t float64) float64
	Samples int
}

// NewParametric validates and returns a parametric curve.
func NewParametric(param geom.Interval, bounds geom.Bounds2D, x, y func(float64) float64, samples int) (*Parametric, error) {
	p := &Parametric{Param: param, Bounds: bounds, X: x, Y: y, Samples: samples}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parametric) curve() {}

// Domain returns the curve's own draw bounds.
func (p *Parametric) Domain() geom.Bounds2D { return p.Bounds }

// Validate checks intervals, functions and sample count.
func (p *Parametric) Validate() error {
	if err := p.Param.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parameter interval")
	}
	if err := p.Bounds.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "draw bounds")
	}
	if p.X == nil || p.Y == nil {
		return errors.Config("parametric curve needs both x and y functions")
	}
	if p.Samples <= 0 {
		return errors.Config("sample count must be positive, got %d", p.Samples)
	}
	return nil
}

// Params returns the Samples parameter values, evenly spaced over the closed
// parameter interval.
func (p *Parametric) Params() []float64 {
	return p.Param.Linspace(p.Samples)
}

// Implicit is the region where Left(x, y) Relation Right(x, y) holds within
// Tolerance, restricted to Bounds.
type Implicit struct {
	Left, Right func(x, y float64) float64
	Relation    Relation
	Tolerance   float64
	Bounds      geom.Bounds2D
}

// NewImplicit validates and returns an implicit graph.
func NewImplicit(left, right func(x, y float64) float64, rel Relation, tol float64, bounds geom.Bounds2D) (*Implicit, error) {
	g := &Implicit{Left: left, Right: right, Relation: rel, Tolerance: tol, Bounds: bounds}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Implicit) curve() {}

// Domain returns the rectangle the graph is defined on.
func (g *Implicit) Domain() geom.Bounds2D { return g.Bounds }

// Validate checks functions, relation, tolerance and bounds.
func (g *Implicit) Validate() error {
	if g.Left == nil || g.Right == nil {
		return errors.Config("implicit graph needs both left and right terms")
	}
	if !g.Relation.valid() {
		return errors.Config("invalid relation %d", g.Relation)
	}
	if !(g.Tolerance > 0) {
		return errors.Config("tolerance must be positive, got %v", g.Tolerance)
	}
	if err := g.Bounds.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "definition bounds")
	}
	return nil
}

// Holds reports whether the relation is satisfied at (x, y).
func (g *Implicit) Holds(x, y float64) bool {
	return g.Relation.Test(g.Left(x, y), g.Right(x, y), g.Tolerance)
}
