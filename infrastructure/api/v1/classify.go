package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/infrastructure/api/middleware"
	"github.com/newsroomhq/newstag/infrastructure/api/v1/dto"
)

// DefaultBatchSize bounds batch requests that omit a size.
const DefaultBatchSize = 10

// ClassifyRouter handles classification API endpoints.
type ClassifyRouter struct {
	classifier *service.Classifier
	logger     *slog.Logger
}

// NewClassifyRouter creates a new ClassifyRouter.
func NewClassifyRouter(classifier *service.Classifier, logger *slog.Logger) *ClassifyRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifyRouter{
		classifier: classifier,
		logger:     logger,
	}
}

// Routes returns the chi router for classification endpoints.
func (rt *ClassifyRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", rt.Classify)
	router.Post("/batch", rt.Batch)

	return router
}

// Classify handles POST /api/v1/classify: the single-article entry
// point. With apply=false the suggestions are computed and recorded but
// no assignments are written.
func (rt *ClassifyRouter) Classify(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.ClassifyRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
		return
	}
	if body.ArticleID == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "article_id is required", nil), rt.logger)
		return
	}

	apply := true
	if body.Apply != nil {
		apply = *body.Apply
	}

	suggestions, err := rt.classifier.ClassifyArticle(ctx, body.ArticleID, apply)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ClassifyResponse{
		ArticleID:   body.ArticleID,
		Applied:     apply,
		Suggestions: suggestionsToDTO(suggestions),
	})
}

// Batch handles POST /api/v1/classify/batch: the batch entry point.
// Per-item failures are enumerated in the response; the transport-level
// status is 200 unless the batch itself could not run.
func (rt *ClassifyRouter) Batch(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.BatchRequest
	if req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
			return
		}
	}
	if body.BatchSize <= 0 {
		body.BatchSize = DefaultBatchSize
	}

	result, err := rt.classifier.ProcessBatch(ctx, body.BatchSize)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	details := make([]dto.BatchItemDetail, len(result.Details))
	for i, d := range result.Details {
		details[i] = dto.BatchItemDetail{
			ArticleID: d.ArticleID,
			Status:    d.Status,
			Error:     d.Error,
		}
	}
	middleware.WriteJSON(w, http.StatusOK, dto.BatchResponse{
		Processed: result.Processed,
		Details:   details,
	})
}

func suggestionsToDTO(suggestions []classify.Suggestion) []dto.Suggestion {
	out := make([]dto.Suggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = dto.Suggestion{
			TagID:    s.TagID(),
			Name:     s.Name(),
			Distance: s.Distance(),
		}
	}
	return out
}
