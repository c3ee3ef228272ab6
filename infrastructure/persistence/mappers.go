package persistence

import (
	"github.com/newsroomhq/newstag/domain/article"
	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/domain/tag"
	"github.com/newsroomhq/newstag/internal/database"
)

// ArticleMapper maps between domain Article and persistence ArticleModel.
type ArticleMapper struct{}

// ToDomain converts an ArticleModel to a domain Article.
func (m ArticleMapper) ToDomain(e ArticleModel) article.Article {
	return article.NewWithTimestamps(e.ID, e.Title, e.Snippet, e.Body, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Article to an ArticleModel.
func (m ArticleMapper) ToModel(a article.Article) ArticleModel {
	return ArticleModel{
		ID:        a.ID(),
		Title:     a.Title(),
		Snippet:   a.Snippet(),
		Body:      a.Body(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}

// TagMapper maps between domain Tag and persistence TagModel.
type TagMapper struct{}

// ToDomain converts a TagModel to a domain Tag.
func (m TagMapper) ToDomain(e TagModel) tag.Tag {
	var embedding []float64
	if e.Embedding != nil {
		embedding = e.Embedding.Floats()
	}
	return tag.NewWithID(e.ID, e.Name, embedding, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Tag to a TagModel.
func (m TagMapper) ToModel(t tag.Tag) TagModel {
	var embedding *database.PgVector
	if t.HasEmbedding() {
		v := database.NewPgVector(t.Embedding())
		embedding = &v
	}
	return TagModel{
		ID:        t.ID(),
		Name:      t.Name(),
		Embedding: embedding,
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

// QueueItemMapper maps between domain queue Item and QueueItemModel.
type QueueItemMapper struct{}

// ToDomain converts a QueueItemModel to a domain Item.
func (m QueueItemMapper) ToDomain(e QueueItemModel) queue.Item {
	return queue.NewItemFull(
		e.ID,
		e.ArticleID,
		queue.Status(e.Status),
		e.EnqueuedAt,
		e.ClaimedAt,
		e.ProcessedAt,
		e.ErrorMessage,
	)
}

// ToModel converts a domain Item to a QueueItemModel.
func (m QueueItemMapper) ToModel(i queue.Item) QueueItemModel {
	return QueueItemModel{
		ID:           i.ID(),
		ArticleID:    i.ArticleID(),
		Status:       i.Status().String(),
		EnqueuedAt:   i.EnqueuedAt(),
		ClaimedAt:    i.ClaimedAt(),
		ProcessedAt:  i.ProcessedAt(),
		ErrorMessage: i.ErrorMessage(),
	}
}

// RecordMapper maps between domain classification Record and RecordModel.
type RecordMapper struct{}

// ToDomain converts a RecordModel to a domain Record.
func (m RecordMapper) ToDomain(e RecordModel) classify.Record {
	suggestions := make([]classify.Suggestion, len(e.Suggestions))
	for i, s := range e.Suggestions {
		suggestions[i] = classify.NewSuggestion(s.TagID, s.Name, s.Distance)
	}
	return classify.NewRecordFull(e.ID, e.ArticleID, suggestions, e.Applied, e.CreatedAt)
}

// ToModel converts a domain Record to a RecordModel.
func (m RecordMapper) ToModel(r classify.Record) RecordModel {
	suggestions := r.Suggestions()
	stored := make(SuggestionsJSON, len(suggestions))
	for i, s := range suggestions {
		stored[i] = SuggestionJSON{
			TagID:    s.TagID(),
			Name:     s.Name(),
			Distance: s.Distance(),
		}
	}
	return RecordModel{
		ID:          r.ID(),
		ArticleID:   r.ArticleID(),
		Suggestions: stored,
		Applied:     r.Applied(),
		CreatedAt:   r.CreatedAt(),
	}
}

// AssignmentMapper maps between domain Assignment and AssignmentModel.
type AssignmentMapper struct{}

// ToDomain converts an AssignmentModel to a domain Assignment.
func (m AssignmentMapper) ToDomain(e AssignmentModel) classify.Assignment {
	return classify.NewAssignmentFull(e.ArticleID, e.TagID, e.CreatedAt)
}

// ToModel converts a domain Assignment to an AssignmentModel.
func (m AssignmentMapper) ToModel(a classify.Assignment) AssignmentModel {
	return AssignmentModel{
		ArticleID: a.ArticleID(),
		TagID:     a.TagID(),
		CreatedAt: a.CreatedAt(),
	}
}
