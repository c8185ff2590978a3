package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/curveplot/internal/api"
	"github.com/matzehuels/curveplot/pkg/cache"
)

// serveCommand creates the serve command that runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve scene rendering over HTTP.

  GET  /healthz          liveness and build information
  POST /render           JSON request, artifacts returned base64-encoded
  POST /render/{format}  JSON request, one artifact returned as the body

Renders share the cache selected with --cache under an "api:" key prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, cache.NewScopedKeyer(nil, "api:"))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	return api.New(runner, c.Logger).ListenAndServe(ctx, addr)
}
