// Package scene loads declarative scene files and compiles them into curves.
//
// A scene names a canvas, a list of curves and optionally an animation
// sweep. Curve functions are written as expressions over a small set of
// variables:
//
//	t, theta   curve parameter (parametric and polar curves)
//	x, y       plane coordinates (function graphs and implicit graphs)
//	p          the animation parameter
//	pi, e      constants
//
// and the usual math functions (sin, cos, sqrt, exp, log, pow, atan2, ...).
// Expressions are compiled once with github.com/expr-lang/expr; a runtime
// failure evaluates to NaN, which the rasterizer treats as an undefined
// point.
//
// Scenes are read from YAML, TOML or JSON, chosen by file extension:
//
//	name: rose
//	image:
//	  width: 800
//	  height: 800
//	  bounds: {x: {min: -2, max: 2}, y: {min: -2, max: 2}}
//	animation: {from: 1, to: 7, frames: 60}
//	curves:
//	  - name: rose
//	    kind: polar
//	    domain: {min: 0, max: 2*pi}
//	    r: cos(p*t)
//	    samples: 4000
//	    gradient: {colors: ["#ff2276", "#22a0ff"], space: hsl}
package scene
