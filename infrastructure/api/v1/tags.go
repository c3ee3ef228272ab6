package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/infrastructure/api/middleware"
	"github.com/newsroomhq/newstag/infrastructure/api/v1/dto"
)

// TagsRouter handles vocabulary API endpoints.
type TagsRouter struct {
	vocabulary *service.Vocabulary
	logger     *slog.Logger
}

// NewTagsRouter creates a new TagsRouter.
func NewTagsRouter(vocabulary *service.Vocabulary, logger *slog.Logger) *TagsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagsRouter{
		vocabulary: vocabulary,
		logger:     logger,
	}
}

// Routes returns the chi router for vocabulary endpoints.
func (rt *TagsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.List)
	router.Post("/", rt.Seed)
	router.Post("/backfill", rt.Backfill)

	return router
}

// List handles GET /api/v1/tags.
func (rt *TagsRouter) List(w http.ResponseWriter, req *http.Request) {
	tags, err := rt.vocabulary.ListTags(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	data := make([]dto.TagResponse, len(tags))
	for i, t := range tags {
		data[i] = dto.TagResponse{
			ID:       t.ID(),
			Name:     t.Name(),
			Embedded: t.HasEmbedding(),
		}
	}
	middleware.WriteJSON(w, http.StatusOK, dto.TagListResponse{Data: data})
}

// Seed handles POST /api/v1/tags: inserts tag names into the catalog.
// Re-seeding existing names is a no-op.
func (rt *TagsRouter) Seed(w http.ResponseWriter, req *http.Request) {
	var body dto.SeedRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
		return
	}
	if len(body.Tags) == 0 {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "tags is required", nil), rt.logger)
		return
	}

	if err := rt.vocabulary.Seed(req.Context(), body.Tags); err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.SeedResponse{Seeded: len(body.Tags)})
}

// Backfill handles POST /api/v1/tags/backfill: embeds tags that lack a
// vector. Safe to call repeatedly.
func (rt *TagsRouter) Backfill(w http.ResponseWriter, req *http.Request) {
	result, err := rt.vocabulary.Backfill(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.BackfillResponse{
		Embedded: result.Embedded,
		Failed:   result.Failed,
	})
}
