package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/curveplot/pkg/canvas"
	"github.com/matzehuels/curveplot/pkg/observability"
	"github.com/matzehuels/curveplot/pkg/sink"
)

// DrawOptions tunes drawing beyond what the scene specifies.
type DrawOptions struct {
	Policy  string // overrides the scene's policy when set
	Workers int    // overrides the scene's worker count when positive
	Logger  *log.Logger
}

// Draw creates a canvas for the scene and draws items onto it, one draw
// call per item, in order.
func Draw(ctx context.Context, opts canvas.ImageOptions, ropts canvas.RenderOptions, items []canvas.Item) (*canvas.Canvas, *canvas.Report, error) {
	c, err := canvas.New(opts)
	if err != nil {
		return nil, nil, err
	}
	hooks := observability.Pipeline()
	report := &canvas.Report{}
	for i, it := range items {
		if it.Name == "" {
			it.Name = fmt.Sprintf("curve-%d", i)
		}
		kind := canvas.Kind(it.Curve)
		hooks.OnDrawStart(ctx, it.Name, kind)
		start := time.Now()

		rep, err := c.Render(ctx, []canvas.Item{it}, ropts)
		report.Drawn = append(report.Drawn, rep.Drawn...)
		report.Skipped = append(report.Skipped, rep.Skipped...)

		painted := 0
		for _, d := range rep.Drawn {
			painted += d.Stats.Painted
		}
		drawErr := err
		if drawErr == nil && len(rep.Skipped) > 0 {
			drawErr = rep.Skipped[0].Err
		}
		hooks.OnDrawComplete(ctx, it.Name, kind, painted, time.Since(start), drawErr)
		if err != nil {
			return c, report, err
		}
	}
	return c, report, nil
}

// renderOptions merges the scene's render options with overrides.
func renderOptions(base canvas.RenderOptions, o DrawOptions) (canvas.RenderOptions, error) {
	if o.Policy != "" {
		p, err := canvas.ParsePolicy(o.Policy)
		if err != nil {
			return base, err
		}
		base.Policy = p
	}
	if o.Workers > 0 {
		base.Workers = o.Workers
	}
	base.Logger = o.Logger
	return base, nil
}

// Encode produces the requested artifacts from a drawn canvas.
func Encode(c *canvas.Canvas, formats []string, textWidth int) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var buf bytes.Buffer
		var err error

		switch format {
		case FormatPNG:
			err = sink.EncodePNG(&buf, c)
		case FormatRGB:
			err = sink.EncodeRGB(&buf, c)
		case FormatText:
			err = sink.EncodeText(&buf, c, c.Options().Background, textWidth)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = buf.Bytes()
	}
	return artifacts, nil
}
