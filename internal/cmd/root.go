package cmd

import (
	"context"
	"os"

	"github.com/dmorgan81/imagegen/internal/config"
	"github.com/dmorgan81/imagegen/internal/inject"
	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var cfgFile string

// flagSettings are config keys a command may override with a flag of the
// same name.
var flagSettings = []string{"addr", "strategy"}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "imagegen",
		Short:        "Prompt-to-image demo with a placeholder image backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")
	root.AddCommand(newServeCmd(), newTUICmd(), newGenerateCmd())
	return root
}

// Execute runs the CLI with the given context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// setup loads configuration, applies explicitly set flags on top, attaches a
// logger to ctx and builds the injector. defaultStrategy is used only when no
// layer chose a strategy. Callers shut the injector down when done.
func setup(cmd *cobra.Command, defaultStrategy string) (context.Context, *do.Injector, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	for _, key := range flagSettings {
		f := cmd.Flags().Lookup(key)
		if f == nil || !f.Changed {
			continue
		}
		if err := cfg.Set(key, f.Value.String()); err != nil {
			return nil, nil, err
		}
	}
	cfg = cfg.WithDefaultStrategy(defaultStrategy)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	ctx := log.NewContext(cmd.Context(), log.New(os.Stderr, log.ParseLevel(cfg.LogLevel)))
	return ctx, inject.Setup(ctx, cfg), nil
}
