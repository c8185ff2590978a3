package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/pipeline"
	"github.com/matzehuels/curveplot/pkg/scene"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output    string  // output file (single format) or base path (multiple)
	formats   string  // comma-separated output formats
	param     float64 // parameter override, applied when paramSet
	paramSet  bool
	textWidth int
	policy    string
	workers   int
	refresh   bool
}

// renderCommand creates the render command for drawing a scene to files.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene to PNG, raw RGB or braille text",
		Long: `Render a scene file (.yaml, .toml or .json; "-" reads YAML from stdin).

With a single format the output is written to --output, or next to the
scene with the format's extension. With several formats --output is a
base path. Use "-o -" to write a single format to stdout.

Results are cached; --refresh forces a redraw.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.paramSet = cmd.Flags().Changed("param")
			return c.runRender(cmd.Context(), args[0], flags, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): png (default), rgb, txt (comma-separated)")
	cmd.Flags().Float64VarP(&flags.param, "param", "p", 0, "parameter value (default: the scene's)")
	cmd.Flags().IntVar(&flags.textWidth, "text-width", pipeline.DefaultTextWidth, "width of txt output in characters")
	cmd.Flags().StringVar(&flags.policy, "policy", "", "failure policy: fail-fast, skip (default: the scene's)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "parallel workers for implicit curves (default: the scene's)")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, flags renderFlags, stdin io.Reader, stdout io.Writer) error {
	data, format, err := readScene(input, stdin)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Source:    data,
		Format:    format,
		Formats:   parseFormats(flags.formats),
		TextWidth: flags.textWidth,
		Policy:    flags.policy,
		Workers:   flags.workers,
		Refresh:   flags.refresh,
		Logger:    c.Logger,
	}
	if input != "-" {
		opts.Name = scene.BaseName(input)
	}
	if flags.paramSet {
		opts.Param = &flags.param
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if flags.output == "-" && len(opts.Formats) != 1 {
		return fmt.Errorf("writing to stdout needs exactly one format, got %d", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+input+"...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if flags.output == "-" {
		_, err := stdout.Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	if res.Report != nil {
		for _, sk := range res.Report.Skipped {
			printWarning("skipped %s: %s", sk.Name, errors.UserMessage(sk.Err))
		}
	}
	printSuccess("Rendered %s", res.Scene.Name)
	printStats(res.Stats.CurveCount, res.Stats.Painted, res.CacheInfo.RenderHit)

	paths := outputPaths(flags.output, input, res.Scene.Name, opts.Formats)
	for _, f := range opts.Formats {
		if err := os.WriteFile(paths[f], res.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		printFile(paths[f])
	}
	return nil
}

// outputPaths maps each format to its output file. A scene read from stdin
// is named after the scene itself.
func outputPaths(output, input, name string, formats []string) map[string]string {
	if input == "-" {
		input = name
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
