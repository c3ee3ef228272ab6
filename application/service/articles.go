// Package service contains application services orchestrating domain
// operations over the persistence and provider layers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/newsroomhq/newstag/domain/article"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/domain/store"
	"github.com/newsroomhq/newstag/internal/database"
)

// Articles manages article ingestion and the enqueue trigger. Every create
// enqueues a classification item; updates enqueue only when the title or
// body text changed, so edits to unrelated fields do not trigger
// reclassification. Pending duplicates are not deduplicated; downstream
// processing is idempotent.
type Articles struct {
	articles article.Store
	queue    queue.ItemStore
	logger   *slog.Logger
}

// NewArticles creates a new Articles service.
func NewArticles(articles article.Store, queueStore queue.ItemStore, logger *slog.Logger) *Articles {
	if logger == nil {
		logger = slog.Default()
	}
	return &Articles{
		articles: articles,
		queue:    queueStore,
		logger:   logger,
	}
}

// Create stores a new article and enqueues it for classification.
// Returns ErrArticleExists when the ID is already taken.
func (s *Articles) Create(ctx context.Context, a article.Article) (article.Article, error) {
	_, err := s.articles.Get(ctx, a.ID())
	if err == nil {
		return article.Article{}, fmt.Errorf("%w: %s", ErrArticleExists, a.ID())
	}
	if !errors.Is(err, database.ErrNotFound) {
		return article.Article{}, fmt.Errorf("check article %s: %w", a.ID(), err)
	}

	saved, err := s.articles.Save(ctx, a)
	if err != nil {
		return article.Article{}, err
	}

	if err := s.enqueue(ctx, saved.ID()); err != nil {
		return article.Article{}, err
	}
	return saved, nil
}

// Update stores changes to an existing article. A new classification item
// is enqueued only when the title or body changed. Returns the saved
// article and whether an item was enqueued.
func (s *Articles) Update(ctx context.Context, a article.Article) (article.Article, bool, error) {
	existing, err := s.articles.Get(ctx, a.ID())
	if err != nil {
		return article.Article{}, false, err
	}

	changed := existing.ContentChanged(a)

	saved, err := s.articles.Save(ctx, a)
	if err != nil {
		return article.Article{}, false, err
	}

	if !changed {
		return saved, false, nil
	}
	if err := s.enqueue(ctx, saved.ID()); err != nil {
		return article.Article{}, false, err
	}
	return saved, true, nil
}

// Get retrieves an article by ID.
func (s *Articles) Get(ctx context.Context, id string) (article.Article, error) {
	return s.articles.Get(ctx, id)
}

// List retrieves articles matching the given options.
func (s *Articles) List(ctx context.Context, options ...store.Option) ([]article.Article, error) {
	return s.articles.Find(ctx, options...)
}

func (s *Articles) enqueue(ctx context.Context, articleID string) error {
	item, err := s.queue.Enqueue(ctx, queue.NewItem(articleID))
	if err != nil {
		return fmt.Errorf("enqueue article %s: %w", articleID, err)
	}

	s.logger.Debug("article enqueued for classification",
		slog.String("article_id", articleID),
		slog.Int64("item_id", item.ID()),
	)
	return nil
}
