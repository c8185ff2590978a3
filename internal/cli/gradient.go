package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/gradient"
)

// gradientFlags holds the command-line flags for the gradient command.
type gradientFlags struct {
	steps  int
	space  string
	easing string
	gamma  float64
	plot   bool
	hex    bool
}

// gradientCommand creates the gradient command for previewing colour ramps.
func (c *CLI) gradientCommand() *cobra.Command {
	flags := gradientFlags{steps: 10, space: gradient.DefaultSpace.Name(), gamma: gradient.DefaultGamma}

	cmd := &cobra.Command{
		Use:   "gradient [color...]",
		Short: "Preview a colour gradient in the terminal",
		Long: `Generate a gradient through two or more colours and print it as swatches.

Colours may be names (red), hex (#ff2276) or rgb(r, g, b) triples.
--plot adds a chart of the red, green and blue channels across the steps.`,
		Example: `  curveplot gradient "#ff2276" "#22a0ff" --space hsv --easing in-out-sine
  curveplot gradient red yellow blue -n 24 --plot`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := generateGradient(args, flags)
			if err != nil {
				return err
			}
			return writeGradient(cmd.OutOrStdout(), colors, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.steps, "steps", "n", flags.steps, "number of colours")
	cmd.Flags().StringVar(&flags.space, "space", flags.space, "interpolation space: rgb, hsl, hsv")
	cmd.Flags().StringVar(&flags.easing, "easing", "linear", "easing: "+strings.Join(gradient.EasingNames(), ", "))
	cmd.Flags().Float64Var(&flags.gamma, "gamma", flags.gamma, "gamma exponent applied before interpolation")
	cmd.Flags().BoolVar(&flags.plot, "plot", false, "plot the RGB channels")
	cmd.Flags().BoolVar(&flags.hex, "hex", false, "print bare hex codes only")

	return cmd
}

func generateGradient(args []string, flags gradientFlags) ([]color.RGB, error) {
	anchors := make([]color.RGB, len(args))
	for i, a := range args {
		c, err := color.Parse(a)
		if err != nil {
			return nil, err
		}
		anchors[i] = c
	}
	space, err := color.ParseSpace(flags.space)
	if err != nil {
		return nil, err
	}
	easing, err := gradient.ParseEasing(flags.easing)
	if err != nil {
		return nil, err
	}
	return gradient.Generate(anchors, flags.steps,
		gradient.WithSpace(space), gradient.WithEasing(easing), gradient.WithGamma(flags.gamma))
}

func writeGradient(w io.Writer, colors []color.RGB, flags gradientFlags) error {
	if flags.hex {
		for _, c := range colors {
			if _, err := fmt.Fprintln(w, c.Hex()); err != nil {
				return err
			}
		}
		return nil
	}
	writeSwatches(w, colors)
	if flags.plot {
		fmt.Fprintln(w)
		fmt.Fprintln(w, channelPlot(colors))
	}
	return nil
}

// channelPlot charts the red, green and blue components of colors.
func channelPlot(colors []color.RGB) string {
	series := make([][]float64, 3)
	for _, c := range colors {
		series[0] = append(series[0], float64(c.R))
		series[1] = append(series[1], float64(c.G))
		series[2] = append(series[2], float64(c.B))
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(8),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(255),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("R G B"))
}
