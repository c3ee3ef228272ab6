package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueueItemStore implements queue.ItemStore using GORM.
//
// Claim uses SELECT ... FOR UPDATE SKIP LOCKED on PostgreSQL so concurrent
// workers never hand out the same item and never block on each other. SQLite
// has no row locks, so it falls back to a compare-and-set update per item,
// which gives the same disjointness guarantee for in-process concurrency.
type QueueItemStore struct {
	database.Repository[queue.Item, QueueItemModel]
	db database.Database
}

// NewQueueItemStore creates a new QueueItemStore.
func NewQueueItemStore(db database.Database) QueueItemStore {
	return QueueItemStore{
		Repository: database.NewRepository[queue.Item, QueueItemModel](db, QueueItemMapper{}, "queue item"),
		db:         db,
	}
}

// Enqueue inserts a new pending item.
func (s QueueItemStore) Enqueue(ctx context.Context, item queue.Item) (queue.Item, error) {
	model := s.Mapper().ToModel(item)
	model.ID = 0
	model.Status = queue.StatusPending.String()
	if model.EnqueuedAt.IsZero() {
		model.EnqueuedAt = time.Now()
	}

	result := s.DB(ctx).Create(&model)
	if result.Error != nil {
		return queue.Item{}, fmt.Errorf("enqueue item: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Claim atomically transfers ownership of up to n pending items, FIFO by
// enqueue time.
func (s QueueItemStore) Claim(ctx context.Context, n int) ([]queue.Item, error) {
	if n <= 0 {
		return []queue.Item{}, nil
	}
	if s.db.IsPostgres() {
		return s.claimLocked(ctx, n)
	}
	return s.claimCompareAndSet(ctx, n)
}

// claimLocked claims a batch inside one transaction using row locks.
// SKIP LOCKED makes concurrent claimers pass over each other's rows
// instead of blocking on them.
func (s QueueItemStore) claimLocked(ctx context.Context, n int) ([]queue.Item, error) {
	now := time.Now()
	var models []QueueItemModel

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", queue.StatusPending.String()).
			Order("enqueued_at ASC, id ASC").
			Limit(n).
			Find(&models).Error; err != nil {
			return fmt.Errorf("select pending items: %w", err)
		}
		if len(models) == 0 {
			return nil
		}

		ids := make([]int64, len(models))
		for i, m := range models {
			ids[i] = m.ID
		}
		if err := tx.Model(&QueueItemModel{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"status":     queue.StatusProcessing.String(),
				"claimed_at": now,
			}).Error; err != nil {
			return fmt.Errorf("mark items processing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("claim items: %w", err)
	}

	items := make([]queue.Item, len(models))
	for i, m := range models {
		m.Status = queue.StatusProcessing.String()
		claimed := now
		m.ClaimedAt = &claimed
		items[i] = s.Mapper().ToDomain(m)
	}
	return items, nil
}

// claimCompareAndSet claims items one at a time with a conditional update.
// An item counts as claimed only when the update actually flipped its
// status, so two claimers racing on the same row keep disjoint sets.
func (s QueueItemStore) claimCompareAndSet(ctx context.Context, n int) ([]queue.Item, error) {
	var candidates []QueueItemModel
	if err := s.DB(ctx).
		Where("status = ?", queue.StatusPending.String()).
		Order("enqueued_at ASC, id ASC").
		Limit(n).
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("select pending items: %w", err)
	}

	now := time.Now()
	items := make([]queue.Item, 0, len(candidates))
	for _, m := range candidates {
		result := s.DB(ctx).Model(&QueueItemModel{}).
			Where("id = ? AND status = ?", m.ID, queue.StatusPending.String()).
			Updates(map[string]any{
				"status":     queue.StatusProcessing.String(),
				"claimed_at": now,
			})
		if result.Error != nil {
			return nil, fmt.Errorf("claim item %d: %w", m.ID, result.Error)
		}
		if result.RowsAffected == 0 {
			// Lost the race; someone else claimed it.
			continue
		}
		m.Status = queue.StatusProcessing.String()
		claimed := now
		m.ClaimedAt = &claimed
		items = append(items, s.Mapper().ToDomain(m))
	}
	return items, nil
}

// MarkCompleted moves a processing item to completed.
func (s QueueItemStore) MarkCompleted(ctx context.Context, id int64) error {
	return s.finish(ctx, id, queue.StatusCompleted, "")
}

// MarkFailed moves a processing item to failed with the given reason.
func (s QueueItemStore) MarkFailed(ctx context.Context, id int64, reason string) error {
	return s.finish(ctx, id, queue.StatusFailed, reason)
}

func (s QueueItemStore) finish(ctx context.Context, id int64, status queue.Status, reason string) error {
	result := s.DB(ctx).Model(&QueueItemModel{}).
		Where("id = ? AND status = ?", id, queue.StatusProcessing.String()).
		Updates(map[string]any{
			"status":        status.String(),
			"processed_at":  time.Now(),
			"error_message": reason,
		})
	if result.Error != nil {
		return fmt.Errorf("mark item %s: %w", status, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: queue item %d not processing", database.ErrNotFound, id)
	}
	return nil
}

// ReclaimStale resets processing items claimed before the cutoff back to
// pending so work lost to a crashed worker is retried.
func (s QueueItemStore) ReclaimStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.DB(ctx).Model(&QueueItemModel{}).
		Where("status = ? AND claimed_at < ?", queue.StatusProcessing.String(), cutoff).
		Updates(map[string]any{
			"status":     queue.StatusPending.String(),
			"claimed_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("reclaim stale items: %w", result.Error)
	}
	return result.RowsAffected, nil
}
