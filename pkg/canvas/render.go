package canvas

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/curveplot/pkg/curve"
	"github.com/matzehuels/curveplot/pkg/errors"
)

// Policy decides what happens when one item of a render fails.
type Policy int

const (
	// FailFast aborts the render on the first failing item.
	FailFast Policy = iota
	// SkipWithDiagnostic logs the failure, records it in the report and
	// continues with the next item.
	SkipWithDiagnostic
)

// ParsePolicy accepts "fail-fast" and "skip".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast", "failfast", "fail":
		return FailFast, nil
	case "skip", "skip-with-diagnostic":
		return SkipWithDiagnostic, nil
	}
	return 0, errors.Config("invalid policy %q (want fail-fast or skip)", s)
}

func (p Policy) String() string {
	if p == SkipWithDiagnostic {
		return "skip"
	}
	return "fail-fast"
}

// Item is one named draw call. A nil Draw uses RenderOptions.Default.
type Item struct {
	Name  string
	Curve curve.Curve
	Draw  *DrawOptions
}

// RenderOptions configures [Canvas.Render].
type RenderOptions struct {
	Default DrawOptions
	Policy  Policy
	// Workers bounds parallel evaluation of implicit grids; values below 1
	// mean one.
	Workers int
	Logger  *log.Logger
}

// DefaultRenderOptions returns fail-fast rendering with the default stroke.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Default: DefaultDrawOptions(), Policy: FailFast, Workers: 1}
}

// Drawn records a successful draw call.
type Drawn struct {
	Name     string
	Stats    Stats
	Duration time.Duration
}

// Skipped records a draw call that failed under [SkipWithDiagnostic].
type Skipped struct {
	Name string
	Err  error
}

// Report summarizes a render.
type Report struct {
	Drawn   []Drawn
	Skipped []Skipped
}

// Render draws items in order. Under [FailFast] the first error is returned
// together with the report of the items drawn so far. Context cancellation
// always aborts.
func (c *Canvas) Render(ctx context.Context, items []Item, opts RenderOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rep := &Report{}
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		name := it.Name
		if name == "" {
			name = fmt.Sprintf("curve-%d", i)
		}
		do := opts.Default
		if it.Draw != nil {
			do = *it.Draw
		}

		logger.Debug("drawing", "name", name, "kind", Kind(it.Curve))
		start := time.Now()
		st, err := c.draw(ctx, it.Curve, do, opts.Workers)
		elapsed := time.Since(start)
		if err != nil {
			if ctx.Err() != nil || opts.Policy == FailFast {
				return rep, fmt.Errorf("draw %s: %w", name, err)
			}
			logger.Warn("skipped curve", "name", name, "code", errors.GetCode(err), "err", errors.UserMessage(err))
			rep.Skipped = append(rep.Skipped, Skipped{Name: name, Err: err})
			continue
		}
		logger.Debug("drawn", "name", name, "painted", st.Painted, "undefined", st.Undefined, "duration", elapsed)
		rep.Drawn = append(rep.Drawn, Drawn{Name: name, Stats: st, Duration: elapsed})
	}
	return rep, nil
}

// Kind names the curve variant: "parametric", "implicit" or "unknown".
func Kind(cv curve.Curve) string {
	switch cv.(type) {
	case *curve.Parametric:
		return "parametric"
	case *curve.Implicit:
		return "implicit"
	}
	return "unknown"
}
