package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/infrastructure/api/middleware"
	v1 "github.com/newsroomhq/newstag/infrastructure/api/v1"
	"github.com/newsroomhq/newstag/infrastructure/api/v1/dto"
	"github.com/newsroomhq/newstag/infrastructure/persistence"
	"github.com/newsroomhq/newstag/internal/testdb"
)

type stubEmbedder struct {
	vec []float64
}

func (e stubEmbedder) Embed(context.Context, string) ([]float64, error) {
	return e.vec, nil
}

func newTestRouter(t *testing.T, auth middleware.AuthConfig) chi.Router {
	t.Helper()
	db := testdb.New(t)

	articles := persistence.NewArticleStore(db)
	tags := persistence.NewTagStore(db)
	queueStore := persistence.NewQueueItemStore(db)
	records := persistence.NewRecordStore(db)
	assignments := persistence.NewAssignmentStore(db)
	embedder := stubEmbedder{vec: []float64{1, 0}}

	router := chi.NewRouter()
	v1.Mount(router, v1.Deps{
		Articles:    service.NewArticles(articles, queueStore, nil),
		Classifier:  service.NewClassifier(articles, tags, queueStore, records, assignments, embedder, nil),
		Vocabulary:  service.NewVocabulary(tags, embedder, nil),
		Queue:       queueStore,
		Assignments: assignments,
	}, auth)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestAPI_ArticleLifecycle(t *testing.T) {
	router := newTestRouter(t, middleware.NewAuthConfigWithKeys(nil))

	// Seed and embed the vocabulary.
	var seeded dto.SeedResponse
	w := doJSON(t, router, http.MethodPost, "/api/v1/tags",
		dto.SeedRequest{Tags: []string{"Weather", "Sports"}}, &seeded)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, seeded.Seeded)

	var backfill dto.BackfillResponse
	w = doJSON(t, router, http.MethodPost, "/api/v1/tags/backfill", nil, &backfill)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, backfill.Embedded)

	// Create an article; it lands on the queue.
	var created dto.ArticleResponse
	w = doJSON(t, router, http.MethodPost, "/api/v1/articles",
		dto.ArticleRequest{ID: "a1", Title: "Storm warning", Body: "High winds expected."}, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "a1", created.ID)
	require.NotNil(t, created.Enqueued)
	assert.True(t, *created.Enqueued)

	var status dto.QueueStatusResponse
	w = doJSON(t, router, http.MethodGet, "/api/v1/queue", nil, &status)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), status.Pending)

	// Drain the queue.
	var batch dto.BatchResponse
	w = doJSON(t, router, http.MethodPost, "/api/v1/classify/batch", dto.BatchRequest{BatchSize: 10}, &batch)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, batch.Processed)

	w = doJSON(t, router, http.MethodGet, "/api/v1/queue", nil, &status)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), status.Completed)
	assert.Zero(t, status.Pending)

	// Assignments are visible on the article.
	var assigned dto.AssignmentListResponse
	w = doJSON(t, router, http.MethodGet, "/api/v1/articles/a1/tags", nil, &assigned)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, assigned.Data)
}

func TestAPI_ClassifyDryRun(t *testing.T) {
	router := newTestRouter(t, middleware.NewAuthConfigWithKeys(nil))

	doJSON(t, router, http.MethodPost, "/api/v1/tags", dto.SeedRequest{Tags: []string{"weather"}}, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/tags/backfill", nil, nil)
	doJSON(t, router, http.MethodPost, "/api/v1/articles",
		dto.ArticleRequest{ID: "a1", Title: "Title", Body: "Body."}, nil)

	apply := false
	var resp dto.ClassifyResponse
	w := doJSON(t, router, http.MethodPost, "/api/v1/classify",
		dto.ClassifyRequest{ArticleID: "a1", Apply: &apply}, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Applied)
	assert.NotEmpty(t, resp.Suggestions)

	// Dry-run leaves no assignments behind.
	var assigned dto.AssignmentListResponse
	w = doJSON(t, router, http.MethodGet, "/api/v1/articles/a1/tags", nil, &assigned)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, assigned.Data)
}

func TestAPI_CreateDuplicateConflicts(t *testing.T) {
	router := newTestRouter(t, middleware.NewAuthConfigWithKeys(nil))

	body := dto.ArticleRequest{ID: "a1", Title: "Title", Body: "Body."}
	w := doJSON(t, router, http.MethodPost, "/api/v1/articles", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/articles", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPI_GetMissingArticle(t *testing.T) {
	router := newTestRouter(t, middleware.NewAuthConfigWithKeys(nil))

	w := doJSON(t, router, http.MethodGet, "/api/v1/articles/ghost", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_WriteProtection(t *testing.T) {
	router := newTestRouter(t, middleware.NewAuthConfigWithKeys([]string{"secret"}))

	// Reads pass without a key.
	w := doJSON(t, router, http.MethodGet, "/api/v1/queue", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Writes do not.
	w = doJSON(t, router, http.MethodPost, "/api/v1/articles",
		dto.ArticleRequest{ID: "a1", Title: "Title", Body: "Body."}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles",
		bytes.NewReader([]byte(`{"id":"a1","title":"Title","body":"Body."}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.APIKeyHeader, "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
