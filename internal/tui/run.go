package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/log"
)

// Run blocks until the user quits or ctx is done.
func Run(ctx context.Context, c *controller.Controller, placeholder string) error {
	log.FromContextOrDiscard(ctx).Info("starting terminal ui")
	p := tea.NewProgram(New(ctx, c, placeholder), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
