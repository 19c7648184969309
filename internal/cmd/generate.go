package cmd

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/dmorgan81/imagegen/internal/config"
	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/session"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

type generateResult struct {
	Prompt   string `json:"prompt"`
	ImageURL string `json:"image_url"`
	Error    string `json:"error,omitempty"`
}

func newGenerateCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single image and print it as JSON",
		Example: `imagegen generate --prompt "a sunset over mountains"
imagegen generate --strategy remote --prompt "a cat"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(prompt) == "" {
				return errors.New("--prompt is required")
			}

			ctx, injector, err := setup(cmd, config.StrategyLocal)
			if err != nil {
				return err
			}
			defer func() { _ = injector.Shutdown() }()

			factory, err := do.Invoke[session.Factory](injector)
			if err != nil {
				return err
			}
			c := factory()
			if err := c.Dispatch(ctx, controller.PromptChanged{Text: prompt}); err != nil {
				return err
			}
			if err := c.Dispatch(ctx, controller.GenerateClicked{}); err != nil {
				return err
			}

			state := c.State()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(generateResult{Prompt: prompt, ImageURL: state.CurrentURL, Error: state.LastError})
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "text prompt (required)")
	cmd.Flags().String("strategy", "", "generation strategy: local or remote (default local)")
	return cmd
}
