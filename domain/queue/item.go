// Package queue provides the durable classification work queue domain types.
// Items are created by the enqueue trigger, claimed in batches by workers,
// and driven to a terminal status exactly once. Rows are append-only; nothing
// deletes them, so the table doubles as a processing history.
package queue

import "time"

// Item is one pending-or-in-flight classification task tied to one article.
// Duplicate pending items for the same article are legal; downstream
// processing is idempotent.
type Item struct {
	id           int64
	articleID    string
	status       Status
	enqueuedAt   time.Time
	claimedAt    *time.Time
	processedAt  *time.Time
	errorMessage string
}

// NewItem creates a pending Item for the given article.
func NewItem(articleID string) Item {
	return Item{
		articleID: articleID,
		status:    StatusPending,
	}
}

// NewItemFull creates an Item with all fields (used by stores).
func NewItemFull(
	id int64,
	articleID string,
	status Status,
	enqueuedAt time.Time,
	claimedAt, processedAt *time.Time,
	errorMessage string,
) Item {
	return Item{
		id:           id,
		articleID:    articleID,
		status:       status,
		enqueuedAt:   enqueuedAt,
		claimedAt:    claimedAt,
		processedAt:  processedAt,
		errorMessage: errorMessage,
	}
}

// ID returns the queue item ID.
func (i Item) ID() int64 { return i.id }

// ArticleID returns the referenced article ID.
func (i Item) ArticleID() string { return i.articleID }

// Status returns the item's current status.
func (i Item) Status() Status { return i.status }

// EnqueuedAt returns when the item entered the queue.
func (i Item) EnqueuedAt() time.Time { return i.enqueuedAt }

// ClaimedAt returns when a worker claimed the item, or nil if unclaimed.
func (i Item) ClaimedAt() *time.Time { return i.claimedAt }

// ProcessedAt returns when the item reached a terminal status, or nil.
func (i Item) ProcessedAt() *time.Time { return i.processedAt }

// ErrorMessage returns the recorded failure reason, empty unless failed.
func (i Item) ErrorMessage() string { return i.errorMessage }
