package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/curveplot/pkg/cache"
	"github.com/matzehuels/curveplot/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → draw → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	result := &Result{
		SceneHash: cache.Hash(opts.Source),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	s, err := LoadScene(ctx, opts.Source, opts.Format, opts.Name)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Scene = s
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.CurveCount = len(s.Curves)

	result.Param = s.Param
	if opts.Param != nil {
		result.Param = *opts.Param
	}

	r.Logger.Info("loaded scene",
		"name", s.Name,
		"curves", len(s.Curves),
		"duration", result.Stats.LoadTime)

	// Try every format from cache first.
	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.SceneHash, result.Param, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("rendered outputs from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Draw
	drawStart := time.Now()
	items, err := s.Items(result.Param)
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	ropts, err := renderOptions(s.Render, DrawOptions{Policy: opts.Policy, Workers: opts.Workers, Logger: opts.Logger})
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	c, report, err := Draw(ctx, s.Image, ropts, items)
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	result.Canvas = c
	result.Report = report
	result.Stats.DrawTime = time.Since(drawStart)
	for _, d := range report.Drawn {
		result.Stats.Painted += d.Stats.Painted
	}

	r.Logger.Info("drew curves",
		"drawn", len(report.Drawn),
		"skipped", len(report.Skipped),
		"painted", result.Stats.Painted,
		"duration", result.Stats.DrawTime)

	// Stage 3: Encode
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	encodeStart := time.Now()
	artifacts, err := Encode(c, opts.Formats, opts.TextWidth)
	result.Stats.EncodeTime = time.Since(encodeStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.EncodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Artifacts = artifacts

	// Reports with skipped curves describe a partial image; don't cache them.
	if len(report.Skipped) == 0 {
		for format, data := range artifacts {
			key := r.Keyer.RenderKey(result.SceneHash, renderKeyOpts(result.Param, format, opts))
			if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
				observability.Cache().OnCacheSet(ctx, "render", len(data))
			}
		}
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	return result, nil
}

func (r *Runner) cachedArtifacts(ctx context.Context, sceneHash string, param float64, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.RenderKey(sceneHash, renderKeyOpts(param, format, opts))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "render")
			return nil, false
		}
		hooks.OnCacheHit(ctx, "render")
		artifacts[format] = data
	}
	return artifacts, true
}

func renderKeyOpts(param float64, format string, opts Options) cache.RenderKeyOpts {
	k := cache.RenderKeyOpts{Param: param, Format: format, Policy: opts.Policy}
	if format == FormatText {
		k.TextWidth = opts.TextWidth
	}
	return k
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
