package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/internal/server"
	"github.com/matzehuels/depgraph/pkg/pipeline"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run an HTTP API that analyzes graphs posted as JSON.

Endpoints:
  POST /v1/traverse  breadth-first walk from "root"
  POST /v1/order     load order and cycle report
  POST /v1/export    D2 edge list
  GET  /healthz      liveness

Example:
  curl -s localhost:8080/v1/order -d '{"text": "app: lib\nlib:"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.config.Server.Addr
			}
			runner := pipeline.NewRunner(nil, c.Logger)
			handler := server.NewRouter(server.NewHandlers(runner, c.Logger))
			srv := server.New(addr, handler, c.Logger)

			printInfo("Listening on %s", StyleHighlight.Render("http://"+srv.Addr()))
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address (default from config)")
	return cmd
}
