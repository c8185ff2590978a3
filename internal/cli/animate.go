package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/curveplot/pkg/pipeline"
	"github.com/matzehuels/curveplot/pkg/scene"
)

// animateFlags holds the command-line flags for the animate command.
type animateFlags struct {
	output  string
	frames  int
	from    float64
	to      float64
	width   int
	height  int
	policy  string
	workers int
	refresh bool
}

// animateCommand creates the animate command for rendering a frame sequence.
func (c *CLI) animateCommand() *cobra.Command {
	var flags animateFlags

	cmd := &cobra.Command{
		Use:   "animate [scene]",
		Short: "Render an animation as numbered PNG frames",
		Long: `Render an animation by sweeping the scene parameter p.

Frames are written as frame_0000.png, frame_0001.png, ... into the output
directory (default: <scene>_frames). The sweep, frame count and resolution
come from the scene's animation section and can be overridden with flags.
Curves with a gradient change colour from frame to frame.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.AnimateOptions{
				Frames:  flags.frames,
				Width:   flags.width,
				Height:  flags.height,
				Policy:  flags.policy,
				Workers: flags.workers,
				Refresh: flags.refresh,
				Logger:  c.Logger,
			}
			if cmd.Flags().Changed("from") {
				opts.From = &flags.from
			}
			if cmd.Flags().Changed("to") {
				opts.To = &flags.to
			}
			return c.runAnimate(cmd.Context(), args[0], flags.output, opts, cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory")
	cmd.Flags().IntVarP(&flags.frames, "frames", "n", 0, "number of frames (default: the scene's)")
	cmd.Flags().Float64Var(&flags.from, "from", 0, "first parameter value (default: the scene's)")
	cmd.Flags().Float64Var(&flags.to, "to", 1, "last parameter value (default: the scene's)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "frame width in pixels (default: the scene's)")
	cmd.Flags().IntVar(&flags.height, "height", 0, "frame height in pixels (default: the scene's)")
	cmd.Flags().StringVar(&flags.policy, "policy", "", "failure policy: fail-fast, skip (default: the scene's)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "parallel workers for implicit curves")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached frames")

	return cmd
}

// runAnimate renders every frame and writes it to dir.
func (c *CLI) runAnimate(ctx context.Context, input, dir string, opts pipeline.AnimateOptions, stdin io.Reader) error {
	data, format, err := readScene(input, stdin)
	if err != nil {
		return err
	}
	opts.Source = data
	opts.Format = format
	if input != "-" {
		opts.Name = scene.BaseName(input)
	}

	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Animating "+input+"...")
	spinner.Start()

	var outDir string
	res, err := runner.Animate(ctx, opts, func(f pipeline.Frame) error {
		if outDir == "" {
			outDir = frameDir(dir, input, opts.Name)
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}
		}
		spinner.SetMessage("Rendering frame %d (p = %.4g)", f.Index+1, f.Param)
		return os.WriteFile(filepath.Join(outDir, frameName(f.Index)), f.PNG, 0o644)
	})
	if err != nil {
		spinner.StopWithError("Animation failed")
		return fmt.Errorf("animate: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d frames", res.Frames))

	printSuccess("Animated %s", res.Scene.Name)
	printDetail("%d frames at %dx%d, p from %g to %g, %d cached",
		res.Frames, res.Animation.Width, res.Animation.Height, res.Animation.From, res.Animation.To, res.CacheHits)
	if res.Skipped > 0 {
		printWarning("%d curve draws were skipped", res.Skipped)
	}
	printFile(outDir)
	return nil
}

// frameDir is the output directory: dir when set, else <scene>_frames next
// to the input.
func frameDir(dir, input, name string) string {
	if dir != "" {
		return dir
	}
	if input == "-" || name == "" {
		return "frames"
	}
	return basePath("", input) + "_frames"
}

func frameName(i int) string {
	return fmt.Sprintf("frame_%04d.png", i)
}
