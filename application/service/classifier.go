package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/newsroomhq/newstag/domain/article"
	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/domain/tag"
	"github.com/newsroomhq/newstag/internal/database"
)

// Item outcome labels reported by the batch entry point.
const (
	ItemStatusSuccess = "success"
	ItemStatusFailed  = "failed"
)

// ItemResult reports the outcome of one queue item in a batch.
type ItemResult struct {
	ArticleID string
	Status    string
	Error     string
}

// BatchResult reports the outcome of one batch invocation.
type BatchResult struct {
	Processed int
	Details   []ItemResult
}

// Classifier implements the classification worker: it claims queue items,
// embeds article text, ranks the tag catalog by L2 distance, and applies
// assignments. One item's failure never aborts the rest of the batch.
type Classifier struct {
	articles    article.Store
	tags        tag.Store
	queue       queue.ItemStore
	records     classify.RecordStore
	assignments classify.AssignmentStore
	embedder    classify.Embedder
	logger      *slog.Logger
}

// NewClassifier creates a new Classifier.
func NewClassifier(
	articles article.Store,
	tags tag.Store,
	queueStore queue.ItemStore,
	records classify.RecordStore,
	assignments classify.AssignmentStore,
	embedder classify.Embedder,
	logger *slog.Logger,
) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		articles:    articles,
		tags:        tags,
		queue:       queueStore,
		records:     records,
		assignments: assignments,
		embedder:    embedder,
		logger:      logger,
	}
}

// ProcessBatch claims up to batchSize pending items and processes each in
// isolation. Per-item failures are recorded on the item and reported in
// the result; only infrastructure failures (the claim itself, loading the
// catalog) propagate as an error.
func (s *Classifier) ProcessBatch(ctx context.Context, batchSize int) (BatchResult, error) {
	items, err := s.queue.Claim(ctx, batchSize)
	if err != nil {
		return BatchResult{}, fmt.Errorf("claim batch: %w", err)
	}
	if len(items) == 0 {
		return BatchResult{Details: []ItemResult{}}, nil
	}

	// Load the catalog once per batch, not per item.
	catalog, err := s.tags.FindEmbedded(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("load tag catalog: %w", err)
	}

	result := BatchResult{Details: make([]ItemResult, 0, len(items))}
	for _, item := range items {
		detail := s.processItem(ctx, item, catalog)
		result.Details = append(result.Details, detail)
		result.Processed++
	}

	s.logger.InfoContext(ctx, "batch processed",
		slog.Int("claimed", len(items)),
		slog.Int("catalog_size", len(catalog)),
	)
	return result, nil
}

// ClassifyArticle ranks the catalog against a single article and records
// the outcome. When apply is false the suggestions are computed and
// recorded but no assignments are written (dry-run).
func (s *Classifier) ClassifyArticle(ctx context.Context, articleID string, apply bool) ([]classify.Suggestion, error) {
	a, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.tags.FindEmbedded(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tag catalog: %w", err)
	}

	return s.classify(ctx, a, catalog, apply)
}

// classify runs the embed-rank-record-assign sequence for one article.
func (s *Classifier) classify(
	ctx context.Context,
	a article.Article,
	catalog []tag.Tag,
	apply bool,
) ([]classify.Suggestion, error) {
	text := classify.ComposeText(a.Title(), a.Snippet(), a.Body())

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed article %s: %w", a.ID(), err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("embed article %s: %w: empty vector", a.ID(), classify.ErrEmbeddingFailed)
	}

	suggestions := classify.Rank(vec, catalog, classify.SuggestionLimit)

	if _, err := s.records.Save(ctx, classify.NewRecord(a.ID(), suggestions, apply)); err != nil {
		return nil, fmt.Errorf("save classification record: %w", err)
	}

	if apply {
		for _, sg := range suggestions {
			if err := s.assignments.Upsert(ctx, classify.NewAssignment(a.ID(), sg.TagID())); err != nil {
				return nil, fmt.Errorf("assign tag %d: %w", sg.TagID(), err)
			}
		}
	}

	return suggestions, nil
}

// processItem handles one claimed queue item. All failures are converted
// into a failed item status plus a result detail; nothing escapes.
func (s *Classifier) processItem(ctx context.Context, item queue.Item, catalog []tag.Tag) ItemResult {
	a, err := s.articles.Get(ctx, item.ArticleID())
	if err != nil {
		reason := "article not found"
		if !errors.Is(err, database.ErrNotFound) {
			reason = err.Error()
		}
		return s.fail(ctx, item, reason)
	}

	if _, err := s.classify(ctx, a, catalog, true); err != nil {
		reason := err.Error()
		if errors.Is(err, classify.ErrEmbeddingFailed) {
			reason = "embedding failed"
		}
		return s.fail(ctx, item, reason)
	}

	if err := s.queue.MarkCompleted(ctx, item.ID()); err != nil {
		return s.fail(ctx, item, fmt.Sprintf("mark completed: %s", err))
	}

	return ItemResult{ArticleID: item.ArticleID(), Status: ItemStatusSuccess}
}

func (s *Classifier) fail(ctx context.Context, item queue.Item, reason string) ItemResult {
	if err := s.queue.MarkFailed(ctx, item.ID(), reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark item failed",
			slog.Int64("item_id", item.ID()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.WarnContext(ctx, "classification failed",
		slog.Int64("item_id", item.ID()),
		slog.String("article_id", item.ArticleID()),
		slog.String("reason", reason),
	)
	return ItemResult{ArticleID: item.ArticleID(), Status: ItemStatusFailed, Error: reason}
}
