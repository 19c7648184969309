package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmorgan81/imagegen/internal/generate"
	"github.com/dmorgan81/imagegen/internal/log"
)

const failureMessage = "Failed to generate image, showing a placeholder instead"

type Option func(*Controller)

// WithClearPrompt empties the prompt once a generation resolves.
func WithClearPrompt(clear bool) Option {
	return func(c *Controller) { c.clearPrompt = clear }
}

// WithFallback replaces the placeholder source used when the strategy fails.
func WithFallback(fallback func() string) Option {
	return func(c *Controller) { c.fallback = fallback }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the prompt, loading flag, current image and history of a
// single session. It is safe for concurrent use; at most one generation runs
// at a time.
type Controller struct {
	strategy    generate.Strategy
	fallback    func() string
	clearPrompt bool
	now         func() time.Time

	mu    sync.Mutex
	state State
}

func New(strategy generate.Strategy, opts ...Option) *Controller {
	c := &Controller{
		strategy: strategy,
		fallback: generate.NewFallback(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Loading
}

func (c *Controller) SetPrompt(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Prompt = text
}

// Generate resolves the current prompt into an image and records it. Strategy
// failures are absorbed: a placeholder is recorded instead and LastError
// describes what went wrong. Only validation and ErrBusy are returned.
func (c *Controller) Generate(ctx context.Context) error {
	logger := log.FromContextOrDiscard(ctx).WithGroup("controller")

	c.mu.Lock()
	if c.state.Loading {
		c.mu.Unlock()
		return ErrBusy
	}
	prompt := c.state.Prompt
	if strings.TrimSpace(prompt) == "" {
		c.state.Notice = ErrEmptyPrompt.Error()
		c.mu.Unlock()
		logger.Info("rejected empty prompt")
		return &ValidationError{Err: ErrEmptyPrompt}
	}
	c.state.Loading = true
	c.state.LastError = ""
	c.state.Notice = ""
	c.mu.Unlock()

	logger.Info("generating image", "prompt", prompt)
	url, err := c.strategy.Resolve(ctx, prompt)
	lastError := ""
	if err != nil {
		url = c.fallback()
		lastError = failureMessage + ": " + err.Error()
		logger.Warn("generation failed, using fallback", "error", err, "url", url)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentURL = url
	c.state.History = append(c.state.History, GeneratedImage{
		Prompt:    prompt,
		ImageURL:  url,
		CreatedAt: c.now().UTC(),
	})
	c.state.LastError = lastError
	if c.clearPrompt {
		c.state.Prompt = ""
	}
	c.state.Loading = false
	logger.Info("generated image", "url", url, "history", len(c.state.History))
	return nil
}

// SelectFromHistory shows url as the current image. History is untouched.
func (c *Controller) SelectFromHistory(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentURL = url
}

// HandleKey treats Enter as a generate trigger, ignored while loading.
func (c *Controller) HandleKey(ctx context.Context, key string) error {
	if key != KeyEnter || c.Loading() {
		return nil
	}
	return c.Generate(ctx)
}
