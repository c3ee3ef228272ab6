package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/internal/database"
	"gorm.io/gorm/clause"
)

// RecordStore implements classify.RecordStore using GORM. Records are
// append-only; there is no update path.
type RecordStore struct {
	database.Repository[classify.Record, RecordModel]
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db database.Database) RecordStore {
	return RecordStore{
		Repository: database.NewRepository[classify.Record, RecordModel](db, RecordMapper{}, "classification record"),
	}
}

// Save inserts a new record, assigning an ID and timestamp when absent.
func (s RecordStore) Save(ctx context.Context, r classify.Record) (classify.Record, error) {
	model := s.Mapper().ToModel(r)
	if model.ID == "" {
		model.ID = uuid.New().String()
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}

	result := s.DB(ctx).Create(&model)
	if result.Error != nil {
		return classify.Record{}, fmt.Errorf("save classification record: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// AssignmentStore implements classify.AssignmentStore using GORM.
type AssignmentStore struct {
	database.Repository[classify.Assignment, AssignmentModel]
}

// NewAssignmentStore creates a new AssignmentStore.
func NewAssignmentStore(db database.Database) AssignmentStore {
	return AssignmentStore{
		Repository: database.NewRepository[classify.Assignment, AssignmentModel](db, AssignmentMapper{}, "assignment"),
	}
}

// Upsert inserts an assignment, silently ignoring duplicates of the
// (article_id, tag_id) pair.
func (s AssignmentStore) Upsert(ctx context.Context, a classify.Assignment) error {
	model := s.Mapper().ToModel(a)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("upsert assignment: %w", result.Error)
	}
	return nil
}

// FindByArticle retrieves all assignments for an article.
func (s AssignmentStore) FindByArticle(ctx context.Context, articleID string) ([]classify.Assignment, error) {
	return s.Find(ctx, classify.WithArticleID(articleID))
}
