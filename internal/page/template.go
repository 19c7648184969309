package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/image"
	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/samber/do"
)

//go:embed assets/index.html
var indexTmpl string

const labelLength = 30

type Thumbnail struct {
	Prompt   string
	Label    string
	ImageURL string
	Selected bool
}

type Params struct {
	Prompt      string
	Placeholder string
	Loading     bool
	CurrentURL  string
	CurrentAlt  string
	Thumbnails  []Thumbnail
	LastError   string
	Notice      string
	BrokenURL   string
}

// NewParams turns a controller snapshot into template input. Thumbnails keep
// history order.
func NewParams(state controller.State, placeholder string) Params {
	params := Params{
		Prompt:      state.Prompt,
		Placeholder: placeholder,
		Loading:     state.Loading,
		CurrentURL:  state.CurrentURL,
		CurrentAlt:  state.Prompt,
		LastError:   state.LastError,
		Notice:      state.Notice,
		BrokenURL:   image.BrokenURL,
	}
	if cur, ok := state.Current(); ok {
		params.CurrentAlt = cur.Prompt
	}
	for _, img := range state.History {
		params.Thumbnails = append(params.Thumbnails, Thumbnail{
			Prompt:   img.Prompt,
			Label:    Truncate(img.Prompt, labelLength),
			ImageURL: img.ImageURL,
			Selected: img.ImageURL == state.CurrentURL,
		})
	}
	return params
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

type Templator struct {
	tmpl *template.Template
	once sync.Once
}

func NewTemplator(i *do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, params Params) ([]byte, error) {
	g.once.Do(func() {
		g.tmpl = template.Must(template.New("index").Parse(indexTmpl))
	})

	log := log.FromContextOrDiscard(ctx).WithGroup("templator")
	log.Debug("rendering page", "thumbnails", len(params.Thumbnails))

	var data bytes.Buffer
	if err := g.tmpl.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
