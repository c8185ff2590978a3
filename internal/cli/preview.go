package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/curveplot/internal/tui"
	"github.com/matzehuels/curveplot/pkg/canvas"
	"github.com/matzehuels/curveplot/pkg/pipeline"
	"github.com/matzehuels/curveplot/pkg/scene"
	"github.com/matzehuels/curveplot/pkg/sink"
)

// previewFlags holds the command-line flags for the preview command.
type previewFlags struct {
	width    int
	step     float64
	param    float64
	paramSet bool
	once     bool
}

// previewCommand creates the interactive terminal preview command.
func (c *CLI) previewCommand() *cobra.Command {
	flags := previewFlags{width: 60, step: 0.05}

	cmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "Preview a scene in the terminal",
		Long: `Draw a scene as braille characters and step its parameter p interactively
with the arrow keys. --once prints a single frame and exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.paramSet = cmd.Flags().Changed("param")
			return c.runPreview(cmd.Context(), args[0], flags, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&flags.width, "width", flags.width, "preview width in characters")
	cmd.Flags().Float64Var(&flags.step, "step", flags.step, "parameter step per key press")
	cmd.Flags().Float64VarP(&flags.param, "param", "p", 0, "initial parameter value (default: the scene's)")
	cmd.Flags().BoolVar(&flags.once, "once", false, "print one frame and exit")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, flags previewFlags, stdin io.Reader, stdout io.Writer) error {
	if flags.width < 1 {
		return fmt.Errorf("width must be positive, got %d", flags.width)
	}
	data, format, err := readScene(input, stdin)
	if err != nil {
		return err
	}
	name := ""
	if input != "-" {
		name = scene.BaseName(input)
	}
	s, err := pipeline.LoadScene(ctx, data, format, name)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	p := s.Param
	if flags.paramSet {
		p = flags.param
	}
	render := brailleRenderer(ctx, s, flags.width)

	if flags.once {
		lines, err := render(p)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, strings.Join(lines, "\n")+"\n")
		return err
	}

	model := tui.NewPreviewModel(s.Name, p, flags.step, render)
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// brailleRenderer draws s at a parameter value and downsamples it to
// braille text. Curves that fail to draw are skipped so that stepping
// through undrawable parameter values keeps the preview alive.
func brailleRenderer(ctx context.Context, s *scene.Scene, width int) tui.RenderFunc {
	ropts := s.Render
	ropts.Policy = canvas.SkipWithDiagnostic
	return func(p float64) ([]string, error) {
		items, err := s.Items(p)
		if err != nil {
			return nil, err
		}
		cv, _, err := pipeline.Draw(ctx, s.Image, ropts, items)
		if err != nil {
			return nil, err
		}
		return sink.Braille(cv, s.Image.Background, width), nil
	}
}
