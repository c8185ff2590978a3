package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/curveplot/pkg/cache"
	"github.com/matzehuels/curveplot/pkg/canvas"
	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/geom"
	"github.com/matzehuels/curveplot/pkg/observability"
	"github.com/matzehuels/curveplot/pkg/scene"
	"github.com/matzehuels/curveplot/pkg/sink"
)

// AnimateOptions configures an animation run. Zero-valued overrides keep
// the scene's animation settings.
type AnimateOptions struct {
	Source []byte       `json:"-"`
	Format scene.Format `json:"format"`
	Name   string       `json:"name,omitempty"`

	From    *float64 `json:"from,omitempty"`
	To      *float64 `json:"to,omitempty"`
	Frames  int      `json:"frames,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	Policy  string   `json:"policy,omitempty"`
	Workers int      `json:"workers,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Validate checks the options and fills in a logger.
func (o *AnimateOptions) Validate() error {
	if len(o.Source) == 0 {
		return fmt.Errorf("scene source is required")
	}
	if err := ValidateSceneFormat(o.Format); err != nil {
		return err
	}
	if o.Frames < 0 || o.Frames > scene.MaxFrames {
		return fmt.Errorf("frames must be in [0, %d], got %d", scene.MaxFrames, o.Frames)
	}
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("resolution must not be negative, got %dx%d", o.Width, o.Height)
	}
	if o.Policy != "" {
		if _, err := canvas.ParsePolicy(o.Policy); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Frame is one rendered animation frame.
type Frame struct {
	Index int
	Param float64
	// PNG is the encoded frame at the animation resolution.
	PNG []byte
	// Image is the decoded frame; nil when the frame came from cache.
	Image    *image.RGBA
	CacheHit bool
}

// AnimateResult summarizes an animation run.
type AnimateResult struct {
	Scene     *scene.Scene
	SceneHash string
	Animation scene.Animation
	Frames    int
	CacheHits int
	Skipped   int
	Duration  time.Duration
}

// FrameParams returns n parameter values evenly spaced over [from, to].
// A single frame uses from.
func FrameParams(from, to float64, n int) []float64 {
	return geom.Interval{Min: from, Max: to}.Linspace(n)
}

// Animate renders every frame of the scene's animation in order and hands
// each one to emit. Rendering stops at the first error from a frame, from
// emit, or from ctx.
func (r *Runner) Animate(ctx context.Context, opts AnimateOptions, emit func(Frame) error) (*AnimateResult, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	start := time.Now()

	s, err := LoadScene(ctx, opts.Source, opts.Format, opts.Name)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	anim := applyAnimation(s.Animation, opts)
	if err := canvas.ValidateSize(anim.Width, anim.Height); err != nil {
		return nil, fmt.Errorf("%w: animation resolution: %w", ErrInvalidOptions, err)
	}

	gradients, err := s.Gradients(anim.Frames)
	if err != nil {
		return nil, fmt.Errorf("gradients: %w", err)
	}
	for i, g := range gradients {
		if g != nil && anim.Frames > 1 && len(g) != anim.Frames {
			return nil, fmt.Errorf("curve %s: gradient has %d colours for %d frames", s.Curves[i].Name, len(g), anim.Frames)
		}
	}
	ropts, err := renderOptions(s.Render, DrawOptions{Policy: opts.Policy, Workers: opts.Workers, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}

	res := &AnimateResult{
		Scene:     s,
		SceneHash: cache.Hash(opts.Source),
		Animation: anim,
	}
	r.Logger.Info("animating scene",
		"name", s.Name,
		"frames", anim.Frames,
		"size", fmt.Sprintf("%dx%d", anim.Width, anim.Height))

	hooks := observability.Pipeline()
	for i, p := range FrameParams(anim.From, anim.To, anim.Frames) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		hooks.OnFrameStart(ctx, i, p)
		frameStart := time.Now()

		frame, skipped, err := r.frame(ctx, s, res.SceneHash, anim, ropts, gradients, i, p, opts.Refresh)
		if err == nil {
			err = emit(frame)
		}
		hooks.OnFrameComplete(ctx, i, time.Since(frameStart), err)
		if err != nil {
			return res, fmt.Errorf("frame %d: %w", i, err)
		}

		res.Frames++
		res.Skipped += skipped
		if frame.CacheHit {
			res.CacheHits++
		}
		r.Logger.Debug("frame done", "index", i, "param", p, "cached", frame.CacheHit)
	}
	res.Duration = time.Since(start)

	r.Logger.Info("animation complete",
		"frames", res.Frames,
		"cached", res.CacheHits,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) frame(ctx context.Context, s *scene.Scene, sceneHash string, anim scene.Animation,
	ropts canvas.RenderOptions, gradients [][]color.RGB, index int, p float64, refresh bool) (Frame, int, error) {
	f := Frame{Index: index, Param: p}
	key := r.Keyer.FrameKey(sceneHash, cache.FrameKeyOpts{
		Index:  index,
		Param:  p,
		Frames: anim.Frames,
		Width:  anim.Width,
		Height: anim.Height,
	})
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "frame")
			f.PNG = data
			f.CacheHit = true
			return f, 0, nil
		}
		observability.Cache().OnCacheMiss(ctx, "frame")
	}

	items, err := s.FrameItems(p, index, gradients)
	if err != nil {
		return f, 0, err
	}
	c, report, err := Draw(ctx, s.Image, ropts, items)
	if err != nil {
		return f, 0, err
	}
	img, err := sink.Resize(sink.Image(c), anim.Width, anim.Height)
	if err != nil {
		return f, 0, err
	}
	var buf bytes.Buffer
	if err := sink.WritePNG(&buf, img); err != nil {
		return f, 0, err
	}
	f.Image = img
	f.PNG = buf.Bytes()

	if len(report.Skipped) == 0 {
		if err := r.Cache.Set(ctx, key, f.PNG, cache.TTLFrame); err == nil {
			observability.Cache().OnCacheSet(ctx, "frame", len(f.PNG))
		}
	}
	return f, len(report.Skipped), nil
}

func applyAnimation(a scene.Animation, opts AnimateOptions) scene.Animation {
	if opts.From != nil {
		a.From = *opts.From
	}
	if opts.To != nil {
		a.To = *opts.To
	}
	if opts.Frames > 0 {
		a.Frames = opts.Frames
	}
	if opts.Width > 0 {
		a.Width = opts.Width
	}
	if opts.Height > 0 {
		a.Height = opts.Height
	}
	return a
}
