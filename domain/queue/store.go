package queue

import (
	"context"
	"time"

	"github.com/newsroomhq/newstag/domain/store"
)

// ItemStore persists queue items and implements the claim primitive.
type ItemStore interface {
	// Enqueue inserts a new pending item.
	Enqueue(ctx context.Context, item Item) (Item, error)

	// Claim atomically transfers ownership of up to n pending items to the
	// caller, FIFO by enqueue time. Claimed items have status processing and
	// a claim timestamp by the time Claim returns. Two concurrent Claim
	// calls never receive overlapping items and never block on each other.
	Claim(ctx context.Context, n int) ([]Item, error)

	// MarkCompleted moves a processing item to completed.
	MarkCompleted(ctx context.Context, id int64) error

	// MarkFailed moves a processing item to failed with the given reason.
	MarkFailed(ctx context.Context, id int64, reason string) error

	// ReclaimStale resets processing items claimed before the cutoff back to
	// pending, so work lost to a crashed worker is eventually retried.
	// Returns the number of items reclaimed.
	ReclaimStale(ctx context.Context, cutoff time.Time) (int64, error)

	// Find retrieves items matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Item, error)

	// Count returns the number of items matching the given options.
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithStatus filters by the "status" column.
func WithStatus(s Status) store.Option {
	return store.WithCondition("status", s.String())
}

// WithArticleID filters by the "article_id" column.
func WithArticleID(id string) store.Option {
	return store.WithCondition("article_id", id)
}
