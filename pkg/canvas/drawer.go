package canvas

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/curve"
	"github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/geom"
)

// DrawOptions sets the stroke of one draw call.
type DrawOptions struct {
	// StrokeHalfWidth is the radius of the disk painted at each point;
	// 0 paints a single pixel.
	StrokeHalfWidth int       `json:"stroke_half_width" yaml:"stroke_half_width" toml:"stroke_half_width"`
	Color           color.RGB `json:"color" yaml:"color" toml:"color"`
}

// DefaultDrawOptions returns a black stroke of half-width 1.
func DefaultDrawOptions() DrawOptions {
	return DrawOptions{StrokeHalfWidth: 1, Color: color.Black}
}

// Validate reports an INVALID_CONFIG error for a negative stroke.
func (o DrawOptions) Validate() error {
	if o.StrokeHalfWidth < 0 {
		return errors.Config("stroke half-width must not be negative, got %d", o.StrokeHalfWidth)
	}
	return nil
}

// Stats counts what a draw call did.
type Stats struct {
	Samples   int // points evaluated
	Painted   int // points stamped onto the canvas
	Undefined int // parametric samples skipped because x or y was NaN
}

// Draw paints one curve with a single worker.
func (c *Canvas) Draw(ctx context.Context, cv curve.Curve, opts DrawOptions) (Stats, error) {
	return c.draw(ctx, cv, opts, 1)
}

func (c *Canvas) draw(ctx context.Context, cv curve.Curve, opts DrawOptions, workers int) (Stats, error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}
	switch v := cv.(type) {
	case *curve.Parametric:
		if v == nil {
			break
		}
		if err := v.Validate(); err != nil {
			return Stats{}, err
		}
		return c.drawParametric(ctx, v, opts)
	case *curve.Implicit:
		if v == nil {
			break
		}
		if err := v.Validate(); err != nil {
			return Stats{}, err
		}
		return c.drawImplicit(ctx, v, opts, workers)
	}
	return Stats{}, errors.New(errors.ErrCodeUnsupportedVariant, "unsupported curve type %T", cv)
}

func (c *Canvas) drawParametric(ctx context.Context, p *curve.Parametric, opts DrawOptions) (Stats, error) {
	rect, err := geom.PixelRectFor(p.Bounds, c.opts.DrawBounds, c.opts.Width, c.opts.Height)
	if err != nil {
		return Stats{}, err
	}
	m, err := geom.NewMapper(p.Bounds, rect)
	if err != nil {
		return Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	disk := diskOffsets(opts.StrokeHalfWidth)
	var st Stats
	for _, t := range p.Params() {
		st.Samples++
		x, y := p.X(t), p.Y(t)
		if math.IsNaN(x) || math.IsNaN(y) {
			st.Undefined++
			continue
		}
		px, py := m.Map(x, y)
		c.stamp(c.pixel(px, c.opts.Width), c.pixel(py, c.opts.Height), disk, opts.Color)
		st.Painted++
	}
	return st, nil
}

func (c *Canvas) drawImplicit(ctx context.Context, g *curve.Implicit, opts DrawOptions, workers int) (Stats, error) {
	view := c.opts.DrawBounds
	sw, sh, err := geom.IntersectionSize(g.Bounds, view, c.opts.Width, c.opts.Height)
	if err != nil {
		return Stats{}, err
	}
	ov, _ := g.Bounds.Overlap(view)
	xs := ov.X.Linspace(geom.GridCount(sw))
	ys := ov.Y.Linspace(geom.GridCount(sh))

	mask, err := evaluateGrid(ctx, g, xs, ys, workers)
	if err != nil {
		return Stats{}, err
	}

	disk := diskOffsets(opts.StrokeHalfWidth)
	st := Stats{Samples: len(xs) * len(ys)}
	for i, x := range xs {
		for j, y := range ys {
			if !mask[i][j] {
				continue
			}
			px, py := c.mapper.Map(x, y)
			c.stamp(c.pixel(px, c.opts.Width), c.pixel(py, c.opts.Height), disk, opts.Color)
			st.Painted++
		}
	}
	return st, nil
}

// evaluateGrid tests the relation at every (xs[i], ys[j]). Columns are split
// into contiguous ranges, one per worker; each worker writes only its own
// columns.
func evaluateGrid(ctx context.Context, g *curve.Implicit, xs, ys []float64, workers int) ([][]bool, error) {
	mask := make([][]bool, len(xs))
	for i := range mask {
		mask[i] = make([]bool, len(ys))
	}
	workers = max(1, min(workers, len(xs)))
	chunk := (len(xs) + workers - 1) / workers

	eg, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(xs); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(xs))
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				col := mask[i]
				for j, y := range ys {
					col[j] = g.Holds(xs[i], y)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return mask, nil
}

// pixel truncates toward zero and clamps into [0, n-1].
func (c *Canvas) pixel(v float64, n int) int {
	return int(math.Min(math.Max(v, 0), float64(n-1)))
}

type offset struct{ dx, dy int }

// diskOffsets lists the pixel offsets with dx²+dy² <= r².
func diskOffsets(r int) []offset {
	out := make([]offset, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				out = append(out, offset{dx, dy})
			}
		}
	}
	return out
}

func (c *Canvas) stamp(x, y int, disk []offset, col color.RGB) {
	for _, o := range disk {
		c.Set(x+o.dx, y+o.dy, col)
	}
}
