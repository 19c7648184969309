package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/dmorgan81/imagegen/internal/generate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fallbackPattern = regexp.MustCompile(`^https://picsum\.photos/600/400\?random=\d+$`)

type recordingStrategy struct {
	prompts []string
	url     string
	err     error
}

func (s *recordingStrategy) Resolve(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.url, s.err
}

func TestGenerateRejectsBlankPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\t\n"} {
		strategy := &recordingStrategy{url: "u"}
		c := New(strategy)
		c.SetPrompt(prompt)
		before := c.State()

		err := c.Generate(context.Background())

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ErrorIs(t, err, ErrEmptyPrompt)

		after := c.State()
		assert.Equal(t, before.History, after.History)
		assert.Equal(t, before.CurrentURL, after.CurrentURL)
		assert.False(t, after.Loading)
		assert.Equal(t, ErrEmptyPrompt.Error(), after.Notice)
		assert.Empty(t, strategy.prompts, "strategy must not be called")
	}
}

func TestGenerateRemoteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"https://picsum.photos/512/512?random=42"}`))
	}))
	defer srv.Close()

	c := New(generate.NewRemote(srv.Client(), srv.URL))
	c.SetPrompt("a sunset over mountains")
	require.NoError(t, c.Generate(context.Background()))

	state := c.State()
	assert.Equal(t, "https://picsum.photos/512/512?random=42", state.CurrentURL)
	require.Len(t, state.History, 1)
	assert.Equal(t, "a sunset over mountains", state.History[0].Prompt)
	assert.Equal(t, "https://picsum.photos/512/512?random=42", state.History[0].ImageURL)
	assert.False(t, state.Loading)
	assert.Empty(t, state.LastError)
	assert.Equal(t, "a sunset over mountains", state.Prompt, "prompt is kept by default")
}

func TestGenerateRemoteFailureFallsBack(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	cases := map[string]generate.Strategy{
		"http 500":         generate.NewRemote(failing.Client(), failing.URL),
		"network rejected": generate.NewRemote(http.DefaultClient, closedURL),
	}
	for name, strategy := range cases {
		t.Run(name, func(t *testing.T) {
			c := New(strategy)
			c.SetPrompt("a cat")
			require.NoError(t, c.Generate(context.Background()))

			state := c.State()
			assert.Regexp(t, fallbackPattern, state.CurrentURL)
			assert.False(t, state.Loading)
			require.Len(t, state.History, 1)
			assert.Equal(t, state.CurrentURL, state.History[0].ImageURL)
			assert.NotEmpty(t, state.LastError)
		})
	}
}

func TestGenerateClearsLastErrorOnNextRun(t *testing.T) {
	strategy := &recordingStrategy{err: errors.New("down")}
	c := New(strategy, WithFallback(func() string { return "fallback" }))
	c.SetPrompt("a")
	require.NoError(t, c.Generate(context.Background()))
	assert.NotEmpty(t, c.State().LastError)

	strategy.err, strategy.url = nil, "ok"
	require.NoError(t, c.Generate(context.Background()))
	state := c.State()
	assert.Empty(t, state.LastError)
	assert.Equal(t, []string{"fallback", "ok"}, []string{state.History[0].ImageURL, state.History[1].ImageURL})
}

type blockingStrategy struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingStrategy) Resolve(ctx context.Context, _ string) (string, error) {
	close(s.started)
	<-s.release
	return "https://example.com/img.png", nil
}

func TestLoadingSpansResolution(t *testing.T) {
	strategy := &blockingStrategy{started: make(chan struct{}), release: make(chan struct{})}
	c := New(strategy)
	c.SetPrompt("a cat")
	assert.False(t, c.Loading())

	done := make(chan error)
	go func() { done <- c.Generate(context.Background()) }()

	<-strategy.started
	assert.True(t, c.Loading())
	assert.ErrorIs(t, c.Generate(context.Background()), ErrBusy)
	assert.NoError(t, c.HandleKey(context.Background(), KeyEnter), "enter is ignored while loading")
	assert.NoError(t, c.Dispatch(context.Background(), GenerateClicked{}))
	assert.Empty(t, c.State().History)

	close(strategy.release)
	require.NoError(t, <-done)
	assert.False(t, c.Loading())
	assert.Len(t, c.State().History, 1)
}

func TestBusyWinsOverBlankPrompt(t *testing.T) {
	strategy := &blockingStrategy{started: make(chan struct{}), release: make(chan struct{})}
	c := New(strategy)
	c.SetPrompt("a cat")

	done := make(chan error)
	go func() { done <- c.Generate(context.Background()) }()
	<-strategy.started

	c.SetPrompt("  ")
	assert.ErrorIs(t, c.Generate(context.Background()), ErrBusy)
	assert.Empty(t, c.State().Notice)

	close(strategy.release)
	require.NoError(t, <-done)
	assert.Empty(t, c.State().Notice)
	assert.Len(t, c.State().History, 1)
}

func TestClearPrompt(t *testing.T) {
	c := New(&recordingStrategy{url: "u"}, WithClearPrompt(true))
	c.SetPrompt("a cat")
	require.NoError(t, c.Generate(context.Background()))
	assert.Empty(t, c.State().Prompt)
}

func TestSelectFromHistory(t *testing.T) {
	strategy := &recordingStrategy{}
	c := New(strategy)
	for _, url := range []string{"one", "two", "three"} {
		strategy.url = url
		c.SetPrompt("prompt " + url)
		require.NoError(t, c.Generate(context.Background()))
	}
	before := c.State().History

	c.SelectFromHistory("one")
	state := c.State()
	assert.Equal(t, "one", state.CurrentURL)
	assert.Equal(t, before, state.History)
	assert.Len(t, strategy.prompts, 3, "selection must not re-fetch")

	cur, ok := state.Current()
	require.True(t, ok)
	assert.Equal(t, "prompt one", cur.Prompt)
	assert.Equal(t, []string{"three", "two", "one"}, []string{state.Newest()[0].ImageURL, state.Newest()[1].ImageURL, state.Newest()[2].ImageURL})
}

func TestHistoryAllowsDuplicates(t *testing.T) {
	c := New(&recordingStrategy{url: "same"})
	c.SetPrompt("same prompt")
	require.NoError(t, c.Generate(context.Background()))
	require.NoError(t, c.Generate(context.Background()))
	assert.Len(t, c.State().History, 2)
}

func TestStateIsACopy(t *testing.T) {
	c := New(&recordingStrategy{url: "u"})
	c.SetPrompt("p")
	require.NoError(t, c.Generate(context.Background()))

	state := c.State()
	state.History[0].ImageURL = "mutated"
	assert.Equal(t, "u", c.State().History[0].ImageURL)
}

func TestCreatedAtUsesClock(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New(&recordingStrategy{url: "u"}, WithClock(func() time.Time { return at }))
	c.SetPrompt("p")
	require.NoError(t, c.Generate(context.Background()))
	assert.Equal(t, at, c.State().History[0].CreatedAt)
}

func TestDispatch(t *testing.T) {
	strategy := &recordingStrategy{url: "u"}
	c := New(strategy)
	ctx := context.Background()

	require.NoError(t, c.Dispatch(ctx, PromptChanged{Text: "a cat"}))
	assert.Equal(t, "a cat", c.State().Prompt)

	require.NoError(t, c.Dispatch(ctx, KeyPressed{Key: "a"}))
	assert.Empty(t, strategy.prompts)

	require.NoError(t, c.Dispatch(ctx, KeyPressed{Key: KeyEnter}))
	require.NoError(t, c.Dispatch(ctx, GenerateClicked{}))
	assert.Equal(t, []string{"a cat", "a cat"}, strategy.prompts)

	require.NoError(t, c.Dispatch(ctx, ThumbnailSelected{URL: "other"}))
	assert.Equal(t, "other", c.State().CurrentURL)

	require.NoError(t, c.Dispatch(ctx, PromptChanged{Text: " "}))
	assert.ErrorIs(t, c.Dispatch(ctx, GenerateClicked{}), ErrEmptyPrompt)
}
