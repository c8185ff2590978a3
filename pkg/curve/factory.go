package curve

import "github.com/matzehuels/curveplot/pkg/errors"

// Factory builds a curve for one value of an animation parameter.
type Factory func(p float64) (Curve, error)

// FunctionFactory converts each generated function graph to a parametric curve.
func FunctionFactory(fn func(p float64) Function) Factory {
	return func(p float64) (Curve, error) {
		c, err := fn(p).ToParametric()
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// PolarFactory converts each generated polar curve to a parametric curve.
func PolarFactory(fn func(p float64) Polar) Factory {
	return func(p float64) (Curve, error) {
		c, err := fn(p).ToParametric()
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// ParametricFactory validates each generated parametric curve.
func ParametricFactory(fn func(p float64) *Parametric) Factory {
	return func(p float64) (Curve, error) {
		c := fn(p)
		if c == nil {
			return nil, errors.New(errors.ErrCodeUnsupportedVariant, "factory returned no curve for %v", p)
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// ImplicitFactory validates each generated implicit graph.
func ImplicitFactory(fn func(p float64) *Implicit) Factory {
	return func(p float64) (Curve, error) {
		g := fn(p)
		if g == nil {
			return nil, errors.New(errors.ErrCodeUnsupportedVariant, "factory returned no curve for %v", p)
		}
		if err := g.Validate(); err != nil {
			return nil, err
		}
		return g, nil
	}
}

// Static returns a factory that ignores the parameter.
func Static(c Curve) Factory {
	return func(float64) (Curve, error) { return c, nil }
}
