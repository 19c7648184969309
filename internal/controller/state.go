package controller

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// GeneratedImage is one entry of the gallery. Entries are never mutated.
type GeneratedImage struct {
	Prompt    string
	ImageURL  string
	CreatedAt time.Time
}

// State is a point-in-time copy of a controller's state. History is ordered
// oldest first; the newest image is always the last element.
type State struct {
	Prompt     string
	Loading    bool
	CurrentURL string
	History    []GeneratedImage
	LastError  string
	Notice     string
}

func (s State) clone() State {
	s.History = slices.Clone(s.History)
	return s
}

// Current returns the newest history entry showing the current image.
func (s State) Current() (GeneratedImage, bool) {
	img, _, ok := lo.FindLastIndexOf(s.History, func(img GeneratedImage) bool {
		return img.ImageURL == s.CurrentURL
	})
	return img, ok && s.CurrentURL != ""
}

// Newest returns the history newest first, for galleries that show recent
// work at the top.
func (s State) Newest() []GeneratedImage {
	return lo.Reverse(slices.Clone(s.History))
}
