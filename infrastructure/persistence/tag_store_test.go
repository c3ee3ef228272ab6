package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroomhq/newstag/domain/tag"
)

func TestTagStore_SaveKeyedOnName(t *testing.T) {
	ctx := context.Background()
	store := NewTagStore(newTestDB(t))

	first, err := store.Save(ctx, tag.New("Weather"))
	require.NoError(t, err)
	assert.NotZero(t, first.ID())
	assert.Equal(t, "weather", first.Name())

	// Re-seeding the same name returns the existing row.
	second, err := store.Save(ctx, tag.New(" WEATHER "))
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID())

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTagStore_SaveWithIDUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewTagStore(newTestDB(t))

	created, err := store.Save(ctx, tag.New("sports"))
	require.NoError(t, err)
	assert.False(t, created.HasEmbedding())

	vec := []float64{0.25, -0.5, 1.0}
	updated, err := store.Save(ctx, created.WithEmbedding(vec))
	require.NoError(t, err)
	assert.Equal(t, created.ID(), updated.ID())

	got, err := store.Get(ctx, created.ID())
	require.NoError(t, err)
	assert.True(t, got.HasEmbedding())
	assert.Equal(t, vec, got.Embedding())
}

func TestTagStore_FindEmbeddedAndUnembedded(t *testing.T) {
	ctx := context.Background()
	store := NewTagStore(newTestDB(t))

	embedded, err := store.Save(ctx, tag.New("weather"))
	require.NoError(t, err)
	_, err = store.Save(ctx, embedded.WithEmbedding([]float64{1, 0, 0}))
	require.NoError(t, err)

	_, err = store.Save(ctx, tag.New("sports"))
	require.NoError(t, err)
	_, err = store.Save(ctx, tag.New("politics"))
	require.NoError(t, err)

	withVec, err := store.FindEmbedded(ctx)
	require.NoError(t, err)
	require.Len(t, withVec, 1)
	assert.Equal(t, "weather", withVec[0].Name())
	assert.Equal(t, []float64{1, 0, 0}, withVec[0].Embedding())

	withoutVec, err := store.FindUnembedded(ctx)
	require.NoError(t, err)
	require.Len(t, withoutVec, 2)
	for _, tg := range withoutVec {
		assert.False(t, tg.HasEmbedding())
	}
}
