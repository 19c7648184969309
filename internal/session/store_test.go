package session

import (
	"context"
	"testing"

	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/generate"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return New(func() *controller.Controller {
		return controller.New(generate.StrategyFunc(func(context.Context, string) (string, error) {
			return "u", nil
		}))
	})
}

func TestGetOrCreate(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	id, c := s.GetOrCreate(ctx, "")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	again, same := s.GetOrCreate(ctx, id)
	assert.Equal(t, id, again)
	assert.Same(t, c, same)

	other, different := s.GetOrCreate(ctx, "unknown")
	assert.NotEqual(t, "unknown", other)
	assert.NotSame(t, c, different)
	assert.Equal(t, 2, s.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, a := s.Create(ctx)
	_, b := s.Create(ctx)
	a.SetPrompt("a cat")
	require.NoError(t, a.Generate(ctx))

	assert.Len(t, a.State().History, 1)
	assert.Empty(t, b.State().History)
}
