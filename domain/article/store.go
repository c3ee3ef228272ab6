package article

import (
	"context"

	"github.com/newsroomhq/newstag/domain/store"
)

// Store persists articles.
type Store interface {
	// Get retrieves an article by ID. Returns database.ErrNotFound when absent.
	Get(ctx context.Context, id string) (Article, error)

	// Find retrieves articles matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Article, error)

	// Save creates or updates an article.
	Save(ctx context.Context, a Article) (Article, error)

	// Delete removes an article.
	Delete(ctx context.Context, id string) error
}

// WithID filters by the "id" column.
func WithID(id string) store.Option {
	return store.WithCondition("id", id)
}
