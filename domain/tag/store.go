package tag

import (
	"context"

	"github.com/newsroomhq/newstag/domain/store"
)

// Store persists the tag catalog.
type Store interface {
	// Get retrieves a tag by ID. Returns database.ErrNotFound when absent.
	Get(ctx context.Context, id int64) (Tag, error)

	// Find retrieves tags matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Tag, error)

	// FindEmbedded retrieves all tags carrying a non-null embedding.
	FindEmbedded(ctx context.Context) ([]Tag, error)

	// FindUnembedded retrieves all tags whose embedding is null.
	FindUnembedded(ctx context.Context) ([]Tag, error)

	// Save creates a tag or updates an existing one. Saves are keyed on the
	// normalized name, so re-seeding an existing vocabulary is a no-op.
	Save(ctx context.Context, t Tag) (Tag, error)

	// Count returns the number of tags matching the given options.
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithName filters by the normalized "name" column.
func WithName(name string) store.Option {
	return store.WithCondition("name", NormalizeName(name))
}
