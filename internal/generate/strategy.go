package generate

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Strategy resolves a prompt into an image URL.
type Strategy interface {
	Resolve(ctx context.Context, prompt string) (string, error)
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(ctx context.Context, prompt string) (string, error)

func (f StrategyFunc) Resolve(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// maxRandomID bounds the ids used in locally synthesized placeholder URLs.
const maxRandomID = 1000

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{rnd: rand.New(rand.NewSource(time.Now().UTC().UnixNano()))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}
