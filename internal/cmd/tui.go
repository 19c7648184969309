package cmd

import (
	"github.com/dmorgan81/imagegen/internal/config"
	"github.com/dmorgan81/imagegen/internal/prompt"
	"github.com/dmorgan81/imagegen/internal/session"
	"github.com/dmorgan81/imagegen/internal/tui"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Generate images from an interactive terminal session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, injector, err := setup(cmd, config.StrategyLocal)
			if err != nil {
				return err
			}
			defer func() { _ = injector.Shutdown() }()

			factory, err := do.Invoke[session.Factory](injector)
			if err != nil {
				return err
			}
			randomizer, err := do.Invoke[*prompt.Randomizer](injector)
			if err != nil {
				return err
			}
			return tui.Run(ctx, factory(), randomizer.Suggest(ctx))
		},
	}
	cmd.Flags().String("strategy", "", "generation strategy: local or remote (default local)")
	return cmd
}
