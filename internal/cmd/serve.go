package cmd

import (
	"github.com/dmorgan81/imagegen/internal/config"
	"github.com/dmorgan81/imagegen/internal/server"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery page and the image endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, injector, err := setup(cmd, config.StrategyRemote)
			if err != nil {
				return err
			}
			defer func() { _ = injector.Shutdown() }()

			cfg, err := do.Invoke[config.Config](injector)
			if err != nil {
				return err
			}
			srv, err := do.Invoke[*server.Server](injector)
			if err != nil {
				return err
			}
			return srv.Run(ctx, cfg.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides config)")
	cmd.Flags().String("strategy", "", "generation strategy for page sessions: local or remote (default remote)")
	return cmd
}
