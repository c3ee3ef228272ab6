package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/domain/article"
	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/domain/tag"
	"github.com/newsroomhq/newstag/infrastructure/persistence"
	"github.com/newsroomhq/newstag/internal/testdb"
)

// stubEmbedder returns canned vectors in tests.
type stubEmbedder struct {
	embed func(ctx context.Context, text string) ([]float64, error)
}

func (e stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return e.embed(ctx, text)
}

func fixedEmbedder(vec []float64) stubEmbedder {
	return stubEmbedder{embed: func(context.Context, string) ([]float64, error) {
		return vec, nil
	}}
}

func failingEmbedder(err error) stubEmbedder {
	return stubEmbedder{embed: func(context.Context, string) ([]float64, error) {
		return nil, err
	}}
}

// classifierFixture wires a classifier against an in-memory database.
type classifierFixture struct {
	articles    persistence.ArticleStore
	tags        persistence.TagStore
	queue       persistence.QueueItemStore
	records     persistence.RecordStore
	assignments persistence.AssignmentStore
	classifier  *service.Classifier
}

func newClassifierFixture(t *testing.T, embedder classify.Embedder) classifierFixture {
	t.Helper()
	db := testdb.New(t)
	f := classifierFixture{
		articles:    persistence.NewArticleStore(db),
		tags:        persistence.NewTagStore(db),
		queue:       persistence.NewQueueItemStore(db),
		records:     persistence.NewRecordStore(db),
		assignments: persistence.NewAssignmentStore(db),
	}
	f.classifier = service.NewClassifier(
		f.articles, f.tags, f.queue, f.records, f.assignments, embedder, nil)
	return f
}

func (f classifierFixture) seedTag(t *testing.T, name string, vec []float64) tag.Tag {
	t.Helper()
	ctx := context.Background()
	created, err := f.tags.Save(ctx, tag.New(name))
	require.NoError(t, err)
	if vec == nil {
		return created
	}
	embedded, err := f.tags.Save(ctx, created.WithEmbedding(vec))
	require.NoError(t, err)
	return embedded
}

func (f classifierFixture) addArticle(t *testing.T, id, title, body string) {
	t.Helper()
	_, err := f.articles.Save(context.Background(), article.New(id, title, "", body))
	require.NoError(t, err)
}

func (f classifierFixture) enqueue(t *testing.T, articleID string) {
	t.Helper()
	_, err := f.queue.Enqueue(context.Background(), queue.NewItem(articleID))
	require.NoError(t, err)
}

func TestClassifier_RanksByDistance(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{0.9, 0.1}))

	weather := f.seedTag(t, "weather", []float64{1, 0})
	politics := f.seedTag(t, "politics", []float64{0.6, 0.4})
	sports := f.seedTag(t, "sports", []float64{0, 1})

	suggestions, err := f.classifier.ClassifyArticle(ctx, mustArticle(t, f, "a1"), true)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	assert.Equal(t, weather.ID(), suggestions[0].TagID())
	assert.Equal(t, politics.ID(), suggestions[1].TagID())
	assert.Equal(t, sports.ID(), suggestions[2].TagID())
	assert.Less(t, suggestions[0].Distance(), suggestions[1].Distance())
	assert.Less(t, suggestions[1].Distance(), suggestions[2].Distance())

	assigned, err := f.assignments.FindByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Len(t, assigned, 3)
}

// mustArticle stores a small article and returns its ID.
func mustArticle(t *testing.T, f classifierFixture, id string) string {
	t.Helper()
	f.addArticle(t, id, "Storm warning issued", "High winds expected along the coast.")
	return id
}

func TestClassifier_SuggestionLimit(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 1}))

	for i := 0; i < 8; i++ {
		f.seedTag(t, fmt.Sprintf("tag-%d", i), []float64{float64(i), 1})
	}

	suggestions, err := f.classifier.ClassifyArticle(ctx, mustArticle(t, f, "a1"), false)
	require.NoError(t, err)
	assert.Len(t, suggestions, classify.SuggestionLimit)
}

func TestClassifier_UnembeddedTagsExcluded(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))

	f.seedTag(t, "weather", []float64{1, 0})
	f.seedTag(t, "draft", nil)

	suggestions, err := f.classifier.ClassifyArticle(ctx, mustArticle(t, f, "a1"), true)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "weather", suggestions[0].Name())
}

func TestClassifier_DryRunWritesNoAssignments(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))
	f.seedTag(t, "weather", []float64{1, 0})

	suggestions, err := f.classifier.ClassifyArticle(ctx, mustArticle(t, f, "a1"), false)
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions)

	record, err := f.records.FindOne(ctx, classify.WithArticleID("a1"))
	require.NoError(t, err)
	assert.False(t, record.Applied())
	assert.Len(t, record.Suggestions(), 1)

	assigned, err := f.assignments.FindByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

func TestClassifier_ReclassifyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{0.9, 0.1}))
	f.seedTag(t, "weather", []float64{1, 0})
	f.seedTag(t, "sports", []float64{0, 1})
	id := mustArticle(t, f, "a1")

	_, err := f.classifier.ClassifyArticle(ctx, id, true)
	require.NoError(t, err)
	_, err = f.classifier.ClassifyArticle(ctx, id, true)
	require.NoError(t, err)

	// Assignments dedupe on (article, tag); records are append-only.
	assigned, err := f.assignments.FindByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Len(t, assigned, 2)

	records, err := f.records.Find(ctx, classify.WithArticleID("a1"))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClassifier_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))

	suggestions, err := f.classifier.ClassifyArticle(ctx, mustArticle(t, f, "a1"), true)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	// The run is still recorded so the outcome is auditable.
	record, err := f.records.FindOne(ctx, classify.WithArticleID("a1"))
	require.NoError(t, err)
	assert.Empty(t, record.Suggestions())

	assigned, err := f.assignments.FindByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

func TestClassifier_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))
	f.seedTag(t, "weather", []float64{1, 0})

	f.addArticle(t, "a1", "First", "Body one.")
	f.addArticle(t, "a2", "Second", "Body two.")
	f.enqueue(t, "a1")
	f.enqueue(t, "a2")

	result, err := f.classifier.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	require.Len(t, result.Details, 2)
	for _, d := range result.Details {
		assert.Equal(t, service.ItemStatusSuccess, d.Status)
	}

	completed, err := f.queue.Count(ctx, queue.WithStatus(queue.StatusCompleted))
	require.NoError(t, err)
	assert.Equal(t, int64(2), completed)
}

func TestClassifier_ProcessBatchEmptyQueue(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))

	result, err := f.classifier.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, result.Processed)
	assert.NotNil(t, result.Details)
	assert.Empty(t, result.Details)
}

func TestClassifier_ProcessBatchIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, fixedEmbedder([]float64{1, 0}))
	f.seedTag(t, "weather", []float64{1, 0})

	f.addArticle(t, "a1", "Exists", "Body.")
	f.enqueue(t, "ghost")
	f.enqueue(t, "a1")

	result, err := f.classifier.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)

	byArticle := make(map[string]service.ItemResult, len(result.Details))
	for _, d := range result.Details {
		byArticle[d.ArticleID] = d
	}
	assert.Equal(t, service.ItemStatusFailed, byArticle["ghost"].Status)
	assert.Equal(t, "article not found", byArticle["ghost"].Error)
	assert.Equal(t, service.ItemStatusSuccess, byArticle["a1"].Status)

	failed, err := f.queue.Find(ctx, queue.WithStatus(queue.StatusFailed))
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "ghost", failed[0].ArticleID())
	assert.Equal(t, "article not found", failed[0].ErrorMessage())
}

func TestClassifier_ProcessBatchEmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	f := newClassifierFixture(t, failingEmbedder(
		fmt.Errorf("%w: provider unavailable", classify.ErrEmbeddingFailed)))
	f.seedTag(t, "weather", []float64{1, 0})

	f.addArticle(t, "a1", "Title", "Body.")
	f.enqueue(t, "a1")

	result, err := f.classifier.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, result.Details, 1)
	assert.Equal(t, service.ItemStatusFailed, result.Details[0].Status)
	assert.Equal(t, "embedding failed", result.Details[0].Error)

	// The item is terminal and not re-claimable.
	claimed, err := f.queue.Claim(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, claimed)
}
