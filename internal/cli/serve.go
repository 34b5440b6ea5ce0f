package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-lloyd/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive page and the diagram API",
		Long: `Serve the interactive page and the JSON/SVG API over one shared scene.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	defer c.Logger.Sync() //nolint:errcheck

	c.Logger.Info("[cli] Запуск сервера",
		zap.String("addr", c.cfg.Server.Addr),
		zap.Int("sites", c.cfg.Scene.Sites),
		zap.String("mode", c.cfg.Shading.Mode),
	)
	return server.New(c.cfg, c.Logger).Run(ctx, c.cfg.Server.Addr)
}
