package prompt

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Examples are offered as input placeholders when nothing else is configured.
var Examples = []string{
	"a sunset over mountains",
	"a kitten wearing a tiny wizard hat",
	"a lighthouse in a storm, oil painting",
	"a neon city street at night in the rain",
	"a bowl of ramen on a wooden table",
}

const fallbackSuggestion = "Enter your prompt here..."

type Randomizer struct {
	prompts []string

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomizer(i *do.Injector) (*Randomizer, error) {
	prompts := do.MustInvokeNamed[[]string](i, "prompts")
	return New(prompts), nil
}

func New(prompts []string) *Randomizer {
	prompts = lo.Compact(lo.Map(prompts, func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))
	rnd := rand.New(rand.NewSource(time.Now().UTC().Unix()))
	return &Randomizer{prompts: prompts, rnd: rnd}
}

// Suggest returns a random example prompt for an input placeholder.
func (r *Randomizer) Suggest(ctx context.Context) string {
	log := log.FromContextOrDiscard(ctx).WithGroup("randomizer")
	if len(r.prompts) == 0 {
		return fallbackSuggestion
	}

	r.mu.Lock()
	idx := r.rnd.Intn(len(r.prompts))
	r.mu.Unlock()

	log.Debug("suggesting prompt", "prompt", r.prompts[idx])
	return "e.g. " + r.prompts[idx]
}
