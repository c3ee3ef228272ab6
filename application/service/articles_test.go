package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/domain/article"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/infrastructure/persistence"
	"github.com/newsroomhq/newstag/internal/database"
	"github.com/newsroomhq/newstag/internal/testdb"
)

func newArticlesService(t *testing.T) (*service.Articles, persistence.QueueItemStore) {
	t.Helper()
	db := testdb.New(t)
	queueStore := persistence.NewQueueItemStore(db)
	svc := service.NewArticles(persistence.NewArticleStore(db), queueStore, nil)
	return svc, queueStore
}

func TestArticles_CreateEnqueues(t *testing.T) {
	ctx := context.Background()
	svc, queueStore := newArticlesService(t)

	saved, err := svc.Create(ctx, article.New("a1", "Title", "Snippet", "Body"))
	require.NoError(t, err)
	assert.Equal(t, "a1", saved.ID())

	items, err := queueStore.Find(ctx, queue.WithArticleID("a1"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, queue.StatusPending, items[0].Status())
}

func TestArticles_CreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newArticlesService(t)

	_, err := svc.Create(ctx, article.New("a1", "Title", "", "Body"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, article.New("a1", "Other", "", "Other body"))
	assert.ErrorIs(t, err, service.ErrArticleExists)
}

func TestArticles_UpdateEnqueuesOnlyOnContentChange(t *testing.T) {
	ctx := context.Background()
	svc, queueStore := newArticlesService(t)

	_, err := svc.Create(ctx, article.New("a1", "Title", "Snippet", "Body"))
	require.NoError(t, err)

	// A snippet-only edit does not warrant reclassification.
	_, enqueued, err := svc.Update(ctx, article.New("a1", "Title", "New snippet", "Body"))
	require.NoError(t, err)
	assert.False(t, enqueued)

	count, err := queueStore.Count(ctx, queue.WithArticleID("a1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// A body edit does.
	_, enqueued, err = svc.Update(ctx, article.New("a1", "Title", "New snippet", "New body"))
	require.NoError(t, err)
	assert.True(t, enqueued)

	count, err = queueStore.Count(ctx, queue.WithArticleID("a1"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestArticles_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newArticlesService(t)

	_, _, err := svc.Update(ctx, article.New("ghost", "Title", "", "Body"))
	assert.ErrorIs(t, err, database.ErrNotFound)
}
