package generate

import (
	"context"
	"time"

	"github.com/dmorgan81/imagegen/internal/image"
	"github.com/dmorgan81/imagegen/internal/log"
)

const (
	LocalDelay  = 1500 * time.Millisecond
	LocalWidth  = 400
	LocalHeight = 300
)

// Local simulates generation without any backend. It only fails when the
// context is cancelled during the delay.
type Local struct {
	Delay    time.Duration
	RandomID func() int
}

func NewLocal() *Local {
	rnd := newLockedRand()
	return &Local{
		Delay:    LocalDelay,
		RandomID: func() int { return rnd.Intn(maxRandomID) },
	}
}

func (l *Local) Resolve(ctx context.Context, prompt string) (string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("local").Info("simulating generation", "prompt", prompt, "delay", l.Delay)
	if err := image.Sleep(ctx, l.Delay); err != nil {
		return "", err
	}
	return image.PicsumURL(LocalWidth, LocalHeight, int64(l.RandomID())), nil
}
