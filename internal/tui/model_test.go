package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/generate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(urls ...string) (Model, *controller.Controller) {
	i := 0
	c := controller.New(generate.StrategyFunc(func(context.Context, string) (string, error) {
		url := urls[i%len(urls)]
		i++
		return url, nil
	}))
	return New(context.Background(), c, "e.g. a cat"), c
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

// press sends a key and runs the resulting generate command, if any.
func press(t *testing.T, m Model, key tea.KeyType) Model {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	m = next.(Model)
	if cmd == nil {
		return m
	}
	msg := cmd()
	gen, ok := msg.(generatedMsg)
	require.True(t, ok, "expected generatedMsg, got %T", msg)
	next, _ = m.Update(gen)
	return next.(Model)
}

func TestEnterGenerates(t *testing.T) {
	m, c := newTestModel("https://picsum.photos/512/512?random=42")

	m = typeText(m, "a sunset over mountains")
	assert.Equal(t, "a sunset over mountains", c.State().Prompt)

	m = press(t, m, tea.KeyEnter)
	state := c.State()
	assert.Equal(t, "https://picsum.photos/512/512?random=42", state.CurrentURL)
	require.Len(t, state.History, 1)

	view := m.View()
	assert.Contains(t, view, "Current Image")
	assert.Contains(t, view, "Generated Images (1)")
	assert.Contains(t, view, "https://picsum.photos/512/512?random=42")
}

func TestEnterWithBlankPromptShowsNotice(t *testing.T) {
	m, c := newTestModel("u")
	m = typeText(m, "   ")
	m = press(t, m, tea.KeyEnter)

	assert.Empty(t, c.State().History)
	assert.Contains(t, m.View(), controller.ErrEmptyPrompt.Error())
}

func TestGallerySelection(t *testing.T) {
	m, c := newTestModel("first-url", "second-url")
	m = typeText(m, "one")
	m = press(t, m, tea.KeyEnter)
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, "second-url", c.State().CurrentURL)

	m = press(t, m, tea.KeyTab)
	assert.Equal(t, focusGallery, m.focus)
	m = press(t, m, tea.KeyUp)
	m = press(t, m, tea.KeyEnter)

	state := c.State()
	assert.Equal(t, "first-url", state.CurrentURL)
	assert.Equal(t, []string{"first-url", "second-url"}, []string{state.History[0].ImageURL, state.History[1].ImageURL})

	m = press(t, m, tea.KeyTab)
	assert.Equal(t, focusPrompt, m.focus)
}

func TestTabWithoutHistoryStaysOnPrompt(t *testing.T) {
	m, _ := newTestModel("u")
	m = press(t, m, tea.KeyTab)
	assert.Equal(t, focusPrompt, m.focus)
}

func TestFailureShowsError(t *testing.T) {
	c := controller.New(generate.StrategyFunc(func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	}))
	m := New(context.Background(), c, "")
	m = typeText(m, "a cat")
	m = press(t, m, tea.KeyEnter)

	assert.Contains(t, m.View(), "Error: ")
	assert.Contains(t, m.View(), "connection refused")
	assert.Regexp(t, `picsum\.photos/600/400`, c.State().CurrentURL)
}
