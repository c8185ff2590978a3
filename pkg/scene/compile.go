package scene

import (
	"fmt"
	"strings"

	"github.com/matzehuels/curveplot/pkg/canvas"
	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/curve"
	"github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/geom"
	"github.com/matzehuels/curveplot/pkg/gradient"
)

// Scene defaults.
const (
	DefaultSamples   = 1000
	DefaultTolerance = 0.01
	DefaultFrames    = 60
)

// Scene limits.
const (
	MaxSamples = 1 << 20
	MaxFrames  = 100000
)

// Curve kinds.
const (
	KindParametric = "parametric"
	KindFunction   = "function"
	KindPolar      = "polar"
	KindImplicit   = "implicit"
)

// Scene is a compiled scene, ready to render.
type Scene struct {
	Name      string
	Image     canvas.ImageOptions
	Render    canvas.RenderOptions
	Param     float64
	Animation Animation
	Curves    []Curve
}

// Animation is the parameter sweep and output resolution.
type Animation struct {
	From, To      float64
	Frames        int
	Width, Height int
}

// Params returns one parameter value per frame.
func (a Animation) Params() []float64 {
	return geom.Interval{Min: a.From, Max: a.To}.Linspace(a.Frames)
}

// Curve is one compiled curve.
type Curve struct {
	Name    string
	Kind    string
	Factory curve.Factory
	// Draw is nil when the curve uses the scene's default stroke.
	Draw     *canvas.DrawOptions
	Gradient *Gradient
}

// Gradient is a validated per-frame colour ramp.
type Gradient struct {
	Colors []color.RGB
	Space  color.Space
	Easing gradient.Easing
	Gamma  float64
}

// Generate returns one colour per frame.
func (g *Gradient) Generate(frames int) ([]color.RGB, error) {
	if frames < 2 {
		return g.Colors[:1], nil
	}
	return gradient.Generate(g.Colors, frames,
		gradient.WithSpace(g.Space), gradient.WithEasing(g.Easing), gradient.WithGamma(g.Gamma))
}

// Compile validates a decoded scene and compiles its expressions.
func Compile(f *File) (*Scene, error) {
	img, err := compileImage(f.Name, f.Image)
	if err != nil {
		return nil, err
	}
	ropts, err := compileRender(f.Render)
	if err != nil {
		return nil, err
	}
	s := &Scene{
		Name:      img.Name,
		Image:     img,
		Render:    ropts,
		Param:     f.Param,
		Animation: compileAnimation(f.Animation, img),
	}
	if s.Animation.Frames < 1 || s.Animation.Frames > MaxFrames {
		return nil, errors.Config("animation frames must be in [1, %d], got %d", MaxFrames, s.Animation.Frames)
	}
	if err := canvas.ValidateSize(s.Animation.Width, s.Animation.Height); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "animation")
	}
	if len(f.Curves) == 0 {
		return nil, errors.Config("scene %q has no curves", s.Name)
	}
	for i, cs := range f.Curves {
		c, err := compileCurve(i, cs, img.DrawBounds, ropts.Default)
		if err != nil {
			return nil, err
		}
		s.Curves = append(s.Curves, c)
	}
	return s, nil
}

func compileImage(name string, spec ImageSpec) (canvas.ImageOptions, error) {
	o := canvas.DefaultImageOptions(spec.Width, spec.Height, spec.Bounds)
	if name != "" {
		o.Name = name
	}
	if spec.Background != nil {
		o.Background = *spec.Background
	}
	if spec.ShowAxes != nil {
		o.ShowAxes = *spec.ShowAxes
	}
	if spec.AxisColor != nil {
		o.AxisColor = *spec.AxisColor
	}
	if spec.AxisWidth != nil {
		o.AxisWidth = *spec.AxisWidth
	}
	if spec.GridColor != nil {
		o.GridColor = *spec.GridColor
	}
	if spec.GridWidth != nil {
		o.GridWidth = *spec.GridWidth
	}
	if spec.TickLength != nil {
		o.TickLength = *spec.TickLength
	}
	if err := o.Validate(); err != nil {
		return o, errors.Wrap(errors.ErrCodeInvalidConfig, err, "image")
	}
	return o, nil
}

func compileRender(spec RenderSpec) (canvas.RenderOptions, error) {
	o := canvas.DefaultRenderOptions()
	policy, err := canvas.ParsePolicy(spec.Policy)
	if err != nil {
		return o, err
	}
	o.Policy = policy
	if spec.Workers > 0 {
		o.Workers = spec.Workers
	}
	if spec.Stroke != nil {
		o.Default.StrokeHalfWidth = *spec.Stroke
	}
	if spec.Color != nil {
		o.Default.Color = *spec.Color
	}
	if err := o.Default.Validate(); err != nil {
		return o, err
	}
	return o, nil
}

func compileAnimation(spec *AnimationSpec, img canvas.ImageOptions) Animation {
	a := Animation{From: 0, To: 1, Frames: DefaultFrames, Width: img.Width, Height: img.Height}
	if spec == nil {
		return a
	}
	if spec.From != nil {
		a.From = *spec.From
	}
	if spec.To != nil {
		a.To = *spec.To
	}
	if spec.Frames != 0 {
		a.Frames = spec.Frames
	}
	if spec.Width != 0 {
		a.Width = spec.Width
	}
	if spec.Height != 0 {
		a.Height = spec.Height
	}
	return a
}

func compileCurve(i int, cs CurveSpec, view geom.Bounds2D, def canvas.DrawOptions) (Curve, error) {
	name := cs.Name
	if name == "" {
		name = fmt.Sprintf("curve-%d", i)
	}
	c := Curve{Name: name, Kind: strings.ToLower(cs.Kind)}
	wrap := func(err error) error {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "curve %s", name)
	}

	bounds := view
	if cs.Bounds != nil {
		bounds = *cs.Bounds
	}
	samples := cs.Samples
	if samples == 0 {
		samples = DefaultSamples
	}
	if samples < 0 || samples > MaxSamples {
		return c, wrap(errors.Config("sample count must be in [1, %d], got %d", MaxSamples, samples))
	}

	var err error
	switch c.Kind {
	case KindParametric:
		c.Factory, err = parametricFactory(cs, bounds, samples)
	case KindFunction:
		c.Factory, err = functionFactory(cs, bounds, samples)
	case KindPolar:
		c.Factory, err = polarFactory(cs, bounds, samples)
	case KindImplicit:
		c.Factory, err = implicitFactory(cs, bounds)
	default:
		err = errors.Config("unknown kind %q (want parametric, function, polar or implicit)", cs.Kind)
	}
	if err != nil {
		return c, wrap(err)
	}

	if cs.Stroke != nil || cs.Color != nil {
		d := def
		if cs.Stroke != nil {
			d.StrokeHalfWidth = *cs.Stroke
		}
		if cs.Color != nil {
			d.Color = *cs.Color
		}
		if err := d.Validate(); err != nil {
			return c, wrap(err)
		}
		c.Draw = &d
	}

	if cs.Gradient != nil {
		g, err := compileGradient(*cs.Gradient)
		if err != nil {
			return c, wrap(err)
		}
		c.Gradient = g
	}
	return c, nil
}

func compileGradient(spec GradientSpec) (*Gradient, error) {
	if len(spec.Colors) < 2 {
		return nil, errors.Config("gradient needs at least 2 colours, got %d", len(spec.Colors))
	}
	g := &Gradient{Colors: spec.Colors, Space: gradient.DefaultSpace, Easing: gradient.Linear, Gamma: gradient.DefaultGamma}
	if spec.Space != "" {
		s, err := color.ParseSpace(spec.Space)
		if err != nil {
			return nil, err
		}
		g.Space = s
	}
	e, err := gradient.ParseEasing(spec.Easing)
	if err != nil {
		return nil, err
	}
	g.Easing = e
	if spec.Gamma != 0 {
		g.Gamma = spec.Gamma
	}
	if !(g.Gamma > 0) {
		return nil, errors.Config("gamma must be positive, got %v", g.Gamma)
	}
	return g, nil
}

// domain compiles the parameter range.
type domain struct{ min, max *program }

func compileDomain(r *RangeSpec) (domain, error) {
	if r == nil {
		return domain{}, errors.Config("missing domain")
	}
	lo, err := compile("domain.min", r.Min)
	if err != nil {
		return domain{}, err
	}
	hi, err := compile("domain.max", r.Max)
	if err != nil {
		return domain{}, err
	}
	return domain{lo, hi}, nil
}

func (d domain) at(p float64) geom.Interval {
	return geom.Interval{Min: d.min.at(p), Max: d.max.at(p)}
}

// offset compiles an optional translation.
type offset struct{ x, y *program }

func compileOffset(ps *PointSpec) (offset, error) {
	if ps == nil {
		return offset{}, nil
	}
	var o offset
	var err error
	if ps.X != "" {
		if o.x, err = compile("offset.x", ps.X); err != nil {
			return o, err
		}
	}
	if ps.Y != "" {
		if o.y, err = compile("offset.y", ps.Y); err != nil {
			return o, err
		}
	}
	return o, nil
}

func (o offset) at(p float64) geom.Point {
	var pt geom.Point
	if o.x != nil {
		pt.X = o.x.at(p)
	}
	if o.y != nil {
		pt.Y = o.y.at(p)
	}
	return pt
}

func parametricFactory(cs CurveSpec, bounds geom.Bounds2D, samples int) (curve.Factory, error) {
	dom, err := compileDomain(cs.Domain)
	if err != nil {
		return nil, err
	}
	xp, err := compile("x", cs.X)
	if err != nil {
		return nil, err
	}
	yp, err := compile("y", cs.Y)
	if err != nil {
		return nil, err
	}
	off, err := compileOffset(cs.Offset)
	if err != nil {
		return nil, err
	}
	return curve.ParametricFactory(func(p float64) *curve.Parametric {
		o := off.at(p)
		return &curve.Parametric{
			Param:  dom.at(p),
			Bounds: bounds,
			X: func(t float64) float64 {
				en := baseEnv
				en.T, en.Theta, en.P = t, t, p
				return xp.eval(en) + o.X
			},
			Y: func(t float64) float64 {
				en := baseEnv
				en.T, en.Theta, en.P = t, t, p
				return yp.eval(en) + o.Y
			},
			Samples: samples,
		}
	}), nil
}

func functionFactory(cs CurveSpec, bounds geom.Bounds2D, samples int) (curve.Factory, error) {
	dom, err := compileDomain(cs.Domain)
	if err != nil {
		return nil, err
	}
	fp, err := compile("f", cs.F)
	if err != nil {
		return nil, err
	}
	off, err := compileOffset(cs.Offset)
	if err != nil {
		return nil, err
	}
	return curve.FunctionFactory(func(p float64) curve.Function {
		return curve.Function{
			Domain: dom.at(p),
			Bounds: bounds,
			F: func(x float64) float64 {
				en := baseEnv
				en.X, en.T, en.P = x, x, p
				return fp.eval(en)
			},
			Samples: samples,
			Offset:  off.at(p),
		}
	}), nil
}

func polarFactory(cs CurveSpec, bounds geom.Bounds2D, samples int) (curve.Factory, error) {
	dom, err := compileDomain(cs.Domain)
	if err != nil {
		return nil, err
	}
	rp, err := compile("r", cs.R)
	if err != nil {
		return nil, err
	}
	off, err := compileOffset(cs.Offset)
	if err != nil {
		return nil, err
	}
	return curve.PolarFactory(func(p float64) curve.Polar {
		return curve.Polar{
			Angle:  dom.at(p),
			Bounds: bounds,
			R: func(theta float64) float64 {
				en := baseEnv
				en.T, en.Theta, en.P = theta, theta, p
				return rp.eval(en)
			},
			Samples: samples,
			Offset:  off.at(p),
		}
	}), nil
}

func implicitFactory(cs CurveSpec, bounds geom.Bounds2D) (curve.Factory, error) {
	lp, err := compile("left", cs.Left)
	if err != nil {
		return nil, err
	}
	right := cs.Right
	if right == "" {
		right = "0"
	}
	rp, err := compile("right", right)
	if err != nil {
		return nil, err
	}
	rel := curve.Eq
	if cs.Relation != "" {
		if rel, err = curve.ParseRelation(cs.Relation); err != nil {
			return nil, err
		}
	}
	tol := cs.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	if !(tol > 0) {
		return nil, errors.Config("tolerance must be positive, got %v", tol)
	}
	return curve.ImplicitFactory(func(p float64) *curve.Implicit {
		term := func(prog *program) func(x, y float64) float64 {
			return func(x, y float64) float64 {
				en := baseEnv
				en.X, en.Y, en.P = x, y, p
				return prog.eval(en)
			}
		}
		return &curve.Implicit{
			Left:      term(lp),
			Right:     term(rp),
			Relation:  rel,
			Tolerance: tol,
			Bounds:    bounds,
		}
	}), nil
}

// Items builds the draw list for parameter p with each curve's static stroke.
func (s *Scene) Items(p float64) ([]canvas.Item, error) {
	return s.FrameItems(p, 0, nil)
}

// FrameItems builds the draw list for one animation frame. colors holds one
// gradient per curve (nil for curves without one); a gradient colour
// replaces the curve's stroke colour for that frame.
func (s *Scene) FrameItems(p float64, frame int, colors [][]color.RGB) ([]canvas.Item, error) {
	items := make([]canvas.Item, 0, len(s.Curves))
	for i, c := range s.Curves {
		cv, err := c.Factory(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "curve %s at p=%v", c.Name, p)
		}
		it := canvas.Item{Name: c.Name, Curve: cv, Draw: c.Draw}
		if i < len(colors) && colors[i] != nil {
			if frame < 0 || frame >= len(colors[i]) {
				return nil, errors.Config("curve %s: gradient has %d colours, no colour for frame %d", c.Name, len(colors[i]), frame)
			}
			d := s.Render.Default
			if c.Draw != nil {
				d = *c.Draw
			}
			d.Color = colors[i][frame]
			it.Draw = &d
		}
		items = append(items, it)
	}
	return items, nil
}

// Gradients generates every curve's gradient for the given frame count.
// The result is indexed like Curves; curves without a gradient get nil.
func (s *Scene) Gradients(frames int) ([][]color.RGB, error) {
	out := make([][]color.RGB, len(s.Curves))
	for i, c := range s.Curves {
		if c.Gradient == nil {
			continue
		}
		g, err := c.Gradient.Generate(frames)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "curve %s gradient", c.Name)
		}
		out[i] = g
	}
	return out, nil
}
