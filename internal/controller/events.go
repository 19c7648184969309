package controller

import "context"

const KeyEnter = "enter"

type Event interface {
	event()
}

type PromptChanged struct {
	Text string
}

type GenerateClicked struct{}

type KeyPressed struct {
	Key string
}

type ThumbnailSelected struct {
	URL string
}

func (PromptChanged) event()     {}
func (GenerateClicked) event()   {}
func (KeyPressed) event()        {}
func (ThumbnailSelected) event() {}

// Dispatch routes a UI event to the matching controller operation. A generate
// trigger that arrives while loading is dropped, the same as a disabled button.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case PromptChanged:
		c.SetPrompt(ev.Text)
	case GenerateClicked:
		if c.Loading() {
			return nil
		}
		return c.Generate(ctx)
	case KeyPressed:
		return c.HandleKey(ctx, ev.Key)
	case ThumbnailSelected:
		c.SelectFromHistory(ev.URL)
	}
	return nil
}
