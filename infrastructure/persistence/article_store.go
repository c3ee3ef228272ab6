package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/newsroomhq/newstag/domain/article"
	"github.com/newsroomhq/newstag/internal/database"
)

// ArticleStore implements article.Store using GORM.
type ArticleStore struct {
	database.Repository[article.Article, ArticleModel]
}

// NewArticleStore creates a new ArticleStore.
func NewArticleStore(db database.Database) ArticleStore {
	return ArticleStore{
		Repository: database.NewRepository[article.Article, ArticleModel](db, ArticleMapper{}, "article"),
	}
}

// Get retrieves an article by ID.
func (s ArticleStore) Get(ctx context.Context, id string) (article.Article, error) {
	return s.FindOne(ctx, article.WithID(id))
}

// Save creates or updates an article.
func (s ArticleStore) Save(ctx context.Context, a article.Article) (article.Article, error) {
	model := s.Mapper().ToModel(a)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}
	model.UpdatedAt = time.Now()

	result := s.DB(ctx).Save(&model)
	if result.Error != nil {
		return article.Article{}, fmt.Errorf("save article: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes an article.
func (s ArticleStore) Delete(ctx context.Context, id string) error {
	result := s.DB(ctx).Where("id = ?", id).Delete(&ArticleModel{})
	if result.Error != nil {
		return fmt.Errorf("delete article: %w", result.Error)
	}
	return nil
}
