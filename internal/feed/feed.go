package feed

import (
	"context"
	"time"

	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type Generator struct {
	link string
	now  func() time.Time
}

func NewGenerator(i *do.Injector) (*Generator, error) {
	return New(do.MustInvokeNamed[string](i, "base_url")), nil
}

func New(link string) *Generator {
	return &Generator{link: link, now: time.Now}
}

// Generate renders a session's history as RSS, newest first.
func (g *Generator) Generate(ctx context.Context, state controller.State) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("feed")
	log.Info("generating rss feed", "items", len(state.History))

	feed := feeds.Feed{
		Title:       "Image Generation App",
		Description: "Images generated in this session",
		Link:        &feeds.Link{Href: g.link},
		Updated:     g.now(),
	}
	feed.Items = lo.Map(state.History, func(img controller.GeneratedImage, _ int) *feeds.Item {
		return &feeds.Item{
			Title:   img.Prompt,
			Link:    &feeds.Link{Href: img.ImageURL},
			Id:      img.ImageURL,
			Created: img.CreatedAt,
			Updated: img.CreatedAt,
		}
	})

	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Updated.After(b.Updated)
	})
	rss, err := feed.ToRss()
	return []byte(rss), err
}
