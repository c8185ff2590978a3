// Package cli implements the curveplot command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/curveplot/pkg/buildinfo"
	"github.com/matzehuels/curveplot/pkg/cache"
	"github.com/matzehuels/curveplot/pkg/pipeline"
	"github.com/matzehuels/curveplot/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "curveplot"

	envRedisAddr     = "CURVEPLOT_REDIS_ADDR"
	envMongoURI      = "CURVEPLOT_MONGO_URI"
	defaultRedisAddr = "localhost:6379"
	defaultMongoURI  = "mongodb://localhost:27017"
	mongoCollection  = "renders"
)

// Cache backends selectable with --cache.
const (
	cacheFile  = "file"
	cacheNone  = "none"
	cacheRedis = "redis"
	cacheMongo = "mongo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// cacheBackend is set by the persistent --cache flag.
	cacheBackend string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:       newLogger(w, level),
		cacheBackend: cacheFile,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Curveplot rasterizes parametric and implicit curves",
		Long:         `Curveplot renders scenes of parametric, function, polar and implicit curves to images, animations and terminal previews.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cacheBackend, "cache", c.cacheBackend,
		"cache backend: file (default), none, redis ($"+envRedisAddr+"), mongo ($"+envMongoURI+")")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.gradientCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the selected cache.
func (c *CLI) newRunner(ctx context.Context, keyer cache.Keyer) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, c.cacheBackend)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func newCache(ctx context.Context, backend string) (cache.Cache, error) {
	switch backend {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheFile, "":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case cacheRedis:
		return cache.NewRedisCache(ctx, envOr(envRedisAddr, defaultRedisAddr), appName+":")
	case cacheMongo:
		return cache.NewMongoCache(ctx, envOr(envMongoURI, defaultMongoURI), appName, mongoCollection)
	}
	return nil, fmt.Errorf("invalid cache backend: %q (must be one of: file, none, redis, mongo)", backend)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/curveplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.png, .txt, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	return strings.Split(s, ",")
}

// readScene reads a scene file. "-" reads YAML from stdin.
func readScene(path string, stdin io.Reader) ([]byte, scene.Format, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, scene.FormatYAML, nil
	}
	return scene.ReadFile(path)
}
