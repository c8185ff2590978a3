// Package gradient builds ordered colour sequences for per-frame colouring.
//
// A gradient is generated once from two or more anchor colours and then
// indexed by frame: frame i of an animation draws with colour[i].
//
//	colors, err := gradient.Generate(
//	    []color.RGB{color.MustParse("red"), color.MustParse("blue")},
//	    60,
//	    gradient.WithSpace(color.HSVSpace),
//	    gradient.WithEasing(gradient.InOutSine),
//	)
//
// Interpolation happens in the chosen colour space; hue channels travel the
// short way around the colour wheel.
package gradient

import (
	"math"

	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/errors"
)

// Defaults used when no option overrides them.
const (
	DefaultGamma = 1.0
)

// DefaultSpace is the interpolation space used when none is given.
var DefaultSpace = color.HSLSpace

// Option configures [Generate].
type Option func(*config)

type config struct {
	space  color.Space
	easing Easing
	gamma  float64
}

// WithSpace sets the interpolation space.
func WithSpace(s color.Space) Option {
	return func(c *config) { c.space = s }
}

// WithEasing sets the progress easing.
func WithEasing(e Easing) Option {
	return func(c *config) { c.easing = e }
}

// WithGamma sets the gamma exponent applied before interpolation.
func WithGamma(g float64) Option {
	return func(c *config) { c.gamma = g }
}

// Generate returns exactly steps colours running from colors[0] to
// colors[len-1] through the intermediate anchors.
func Generate(colors []color.RGB, steps int, opts ...Option) ([]color.RGB, error) {
	cfg := config{space: DefaultSpace, easing: Linear, gamma: DefaultGamma}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(colors) < 2 {
		return nil, errors.Config("gradient needs at least two colours, got %d", len(colors))
	}
	if steps < 2 {
		return nil, errors.Config("gradient steps must be at least 2, got %d", steps)
	}
	if cfg.space == nil {
		return nil, errors.Config("gradient colour space is nil")
	}
	if cfg.easing == nil {
		cfg.easing = Linear
	}
	if !(cfg.gamma > 0) || math.IsInf(cfg.gamma, 0) {
		return nil, errors.Config("gradient gamma must be positive, got %v", cfg.gamma)
	}

	converted := make([]color.Triple, len(colors))
	for i, c := range colors {
		converted[i] = color.ApplyGamma(cfg.space.To(color.Normalize(c)), cfg.gamma)
	}

	hue := cfg.space.HueMask()
	last := len(colors) - 1
	out := make([]color.RGB, steps)
	for i := range out {
		progress := cfg.easing(float64(i) / float64(steps-1))
		idx := progress * float64(last)
		idx1 := int(math.Floor(idx))
		// Easings that overshoot [0, 1] stay on the end anchors.
		if idx1 < 0 {
			idx1, idx = 0, 0
		}
		if idx1 > last {
			idx1, idx = last, float64(last)
		}
		idx2 := min(idx1+1, last)
		fraction := idx - float64(idx1)

		mixed := color.Lerp(converted[idx1], converted[idx2], fraction, hue)
		out[i] = color.Denormalize(cfg.space.From(color.RemoveGamma(mixed, cfg.gamma)))
	}
	return out, nil
}
