package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfplan/pkg/editor"
	"github.com/matzehuels/shelfplan/pkg/server"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planogram HTTP API",
		Long: `Serve the planogram HTTP API on the configured store.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				printInfo("Serving %s store %s", cfg.Storage.Backend, StyleDim.Render(cfg.Storage.Describe()))
				printKeyValue("Listening", "http://"+addr)
				return server.New(r, loggerFromContext(cmd.Context())).ListenAndServe(cmd.Context(), addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+server.DefaultAddr+")")
	return cmd
}
