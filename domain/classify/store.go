package classify

import (
	"context"

	"github.com/newsroomhq/newstag/domain/store"
)

// RecordStore persists the append-only classification audit trail.
type RecordStore interface {
	// Save inserts a new record.
	Save(ctx context.Context, r Record) (Record, error)

	// Find retrieves records matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Record, error)
}

// AssignmentStore persists article-tag assignments.
type AssignmentStore interface {
	// Upsert inserts an assignment, silently ignoring duplicates of the
	// (article_id, tag_id) pair. Concurrent workers classifying the same
	// article must not produce constraint violations.
	Upsert(ctx context.Context, a Assignment) error

	// FindByArticle retrieves all assignments for an article.
	FindByArticle(ctx context.Context, articleID string) ([]Assignment, error)

	// Count returns the number of assignments matching the given options.
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithArticleID filters records or assignments by the "article_id" column.
func WithArticleID(id string) store.Option {
	return store.WithCondition("article_id", id)
}
