package image

import (
	"context"
	"time"

	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/samber/do"
)

const mockNote = "Mock image - replace with real API key for actual generation"

type PicsumGenerator struct {
	Width  int
	Height int
	Delay  time.Duration
	Now    func() time.Time
}

func NewPicsumGenerator(i *do.Injector) (Generator, error) {
	return &PicsumGenerator{
		Width:  do.MustInvokeNamed[int](i, "image_width"),
		Height: do.MustInvokeNamed[int](i, "image_height"),
		Delay:  do.MustInvokeNamed[time.Duration](i, "handler_delay"),
		Now:    time.Now,
	}, nil
}

// Generate waits out the simulated processing delay and returns a picsum URL.
// The prompt is logged but never influences the result.
func (g *PicsumGenerator) Generate(ctx context.Context, params Params) (Result, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("picsum").With("prompt", params.Prompt)
	log.Info("generating placeholder image", "width", g.Width, "height", g.Height)

	if err := Sleep(ctx, g.Delay); err != nil {
		return Result{}, err
	}

	now := g.Now()
	url := PicsumURL(g.Width, g.Height, now.UnixMilli())
	log.Debug("generated placeholder image", "url", url)
	return Result{URL: url, GeneratedAt: now.UTC(), Note: mockNote}, nil
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
