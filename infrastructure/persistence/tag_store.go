package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/newsroomhq/newstag/domain/store"
	"github.com/newsroomhq/newstag/domain/tag"
	"github.com/newsroomhq/newstag/internal/database"
	"gorm.io/gorm/clause"
)

// TagStore implements tag.Store using GORM.
type TagStore struct {
	database.Repository[tag.Tag, TagModel]
}

// NewTagStore creates a new TagStore.
func NewTagStore(db database.Database) TagStore {
	return TagStore{
		Repository: database.NewRepository[tag.Tag, TagModel](db, TagMapper{}, "tag"),
	}
}

// Get retrieves a tag by ID.
func (s TagStore) Get(ctx context.Context, id int64) (tag.Tag, error) {
	return s.FindOne(ctx, store.WithCondition("id", id))
}

// FindEmbedded retrieves all tags carrying an embedding.
func (s TagStore) FindEmbedded(ctx context.Context) ([]tag.Tag, error) {
	return s.Find(ctx, store.WithNotNull("embedding"))
}

// FindUnembedded retrieves all tags awaiting embedding backfill.
func (s TagStore) FindUnembedded(ctx context.Context) ([]tag.Tag, error) {
	return s.Find(ctx, store.WithNull("embedding"))
}

// Save creates a tag or updates an existing one. Tags with an ID are
// updated in place; new tags are keyed on the normalized name, so
// inserting a name that already exists returns the existing row.
func (s TagStore) Save(ctx context.Context, t tag.Tag) (tag.Tag, error) {
	model := s.Mapper().ToModel(t)
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	if model.ID != 0 {
		result := s.DB(ctx).Save(&model)
		if result.Error != nil {
			return tag.Tag{}, fmt.Errorf("save tag: %w", result.Error)
		}
		return s.Mapper().ToDomain(model), nil
	}

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&model)
	if result.Error != nil {
		return tag.Tag{}, fmt.Errorf("create tag: %w", result.Error)
	}
	return s.FindOne(ctx, tag.WithName(model.Name))
}
