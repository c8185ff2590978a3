// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP service.
//
// A run has three stages:
//
//  1. Load: decode and compile a scene file
//  2. Draw: rasterize every curve of the scene onto a fresh canvas
//  3. Encode: produce output artifacts (PNG, raw RGB, braille text)
//
// Animations repeat draw and encode once per frame, sweeping the scene
// parameter and colouring curves from their gradients.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  data,
//	    Format:  scene.FormatYAML,
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Render an animation frame by frame:
//
//	res, err := runner.Animate(ctx, pipeline.AnimateOptions{Source: data, Format: scene.FormatYAML},
//	    func(f pipeline.Frame) error {
//	        return os.WriteFile(fmt.Sprintf("%04d.png", f.Index), f.PNG, 0o644)
//	    })
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/curveplot/pkg/canvas"
	"github.com/matzehuels/curveplot/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTextWidth is the width in characters of braille text output.
	DefaultTextWidth = 80

	// DefaultWorkers bounds parallel implicit-grid evaluation.
	DefaultWorkers = 1
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatRGB  = "rgb"
	FormatText = "txt"
)

// ErrInvalidOptions wraps every option validation failure returned by
// [Runner.Execute] and [Runner.Animate].
var ErrInvalidOptions = errors.New("invalid options")

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatRGB:  true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for rendering one still image.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scene source
	Source []byte       `json:"-"`
	Format scene.Format `json:"format"`
	Name   string       `json:"name,omitempty"` // used when the scene has no name

	// Param overrides the scene's parameter value.
	Param *float64 `json:"param,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	TextWidth int      `json:"text_width,omitempty"`
	Policy    string   `json:"policy,omitempty"` // overrides the scene's policy when set
	Workers   int      `json:"workers,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the compiled scene.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene source.
	SceneHash string

	// Param is the parameter value the image was drawn at.
	Param float64

	// Canvas is the drawn canvas; nil when every artifact came from cache.
	Canvas *canvas.Canvas

	// Report lists drawn and skipped curves; nil on a cache hit.
	Report *canvas.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CurveCount int
	Painted    int
	LoadTime   time.Duration
	DrawTime   time.Duration
	EncodeTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: png, rgb, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSceneFormat checks that a scene encoding is supported.
func ValidateSceneFormat(format scene.Format) error {
	switch format {
	case scene.FormatYAML, scene.FormatTOML, scene.FormatJSON:
		return nil
	}
	return fmt.Errorf("invalid scene format: %q (must be one of: yaml, toml, json)", format)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Source) == 0 {
		return fmt.Errorf("scene source is required")
	}
	if err := ValidateSceneFormat(o.Format); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.TextWidth == 0 {
		o.TextWidth = DefaultTextWidth
	}
	if o.TextWidth < 0 {
		return fmt.Errorf("text_width must be positive, got %d", o.TextWidth)
	}
	if o.Policy != "" {
		if _, err := canvas.ParsePolicy(o.Policy); err != nil {
			return err
		}
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", o.Workers)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
