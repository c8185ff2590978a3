// Package curve defines the drawable curve kinds.
//
// A [Curve] is exactly one of two variants:
//
//   - [Parametric]: a point (x(t), y(t)) sampled over a parameter interval
//   - [Implicit]: the set of grid points where left(x, y) relates to
//     right(x, y) by =, < or > within a tolerance
//
// The set is closed. Function graphs y = f(x) and polar curves r = f(θ) are
// not variants of their own; [Function] and [Polar] convert to a Parametric
// before drawing.
//
// A [Factory] builds a curve for a scalar parameter, which is how animations
// vary a curve frame by frame.
package curve
