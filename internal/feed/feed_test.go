package feed

import (
	"context"
	"encoding/xml"
	"testing"
	"time"

	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rss struct {
	Channel struct {
		Title string `xml:"title"`
		Items []struct {
			Title string `xml:"title"`
			Link  string `xml:"link"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestGenerate(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	state := controller.State{History: []controller.GeneratedImage{
		{Prompt: "older", ImageURL: "https://picsum.photos/400/300?random=1", CreatedAt: at},
		{Prompt: "newer", ImageURL: "https://picsum.photos/400/300?random=2", CreatedAt: at.Add(time.Minute)},
	}}

	data, err := New("http://localhost:8080").Generate(context.Background(), state)
	require.NoError(t, err)

	var out rss
	require.NoError(t, xml.Unmarshal(data, &out))
	assert.Equal(t, "Image Generation App", out.Channel.Title)
	require.Len(t, out.Channel.Items, 2)
	assert.Equal(t, "newer", out.Channel.Items[0].Title)
	assert.Equal(t, "https://picsum.photos/400/300?random=2", out.Channel.Items[0].Link)
	assert.Equal(t, "older", out.Channel.Items[1].Title)
}

func TestGenerateEmpty(t *testing.T) {
	data, err := New("http://localhost:8080").Generate(context.Background(), controller.State{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "<channel>")
}
