// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/domain/article"
	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/infrastructure/api/middleware"
	"github.com/newsroomhq/newstag/infrastructure/api/v1/dto"
)

// ArticlesRouter handles article API endpoints.
type ArticlesRouter struct {
	articles    *service.Articles
	assignments classify.AssignmentStore
	logger      *slog.Logger
}

// NewArticlesRouter creates a new ArticlesRouter.
func NewArticlesRouter(articles *service.Articles, assignments classify.AssignmentStore, logger *slog.Logger) *ArticlesRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticlesRouter{
		articles:    articles,
		assignments: assignments,
		logger:      logger,
	}
}

// Routes returns the chi router for article endpoints.
func (rt *ArticlesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.List)
	router.Post("/", rt.Create)
	router.Get("/{id}", rt.Get)
	router.Put("/{id}", rt.Update)
	router.Get("/{id}/tags", rt.ListTags)

	return router
}

// Create handles POST /api/v1/articles. Creating an article always
// enqueues it for classification.
func (rt *ArticlesRouter) Create(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.ArticleRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
		return
	}
	if body.Title == "" && body.Body == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "title or body is required", nil), rt.logger)
		return
	}

	id := body.ID
	if id == "" {
		id = uuid.New().String()
	}

	saved, err := rt.articles.Create(ctx, article.New(id, body.Title, body.Snippet, body.Body))
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	enqueued := true
	middleware.WriteJSON(w, http.StatusCreated, articleToDTO(saved, &enqueued))
}

// Update handles PUT /api/v1/articles/{id}. An item is enqueued only
// when the title or body changed.
func (rt *ArticlesRouter) Update(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id := chi.URLParam(req, "id")

	var body dto.ArticleRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), rt.logger)
		return
	}

	saved, enqueued, err := rt.articles.Update(ctx, article.New(id, body.Title, body.Snippet, body.Body))
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, articleToDTO(saved, &enqueued))
}

// Get handles GET /api/v1/articles/{id}.
func (rt *ArticlesRouter) Get(w http.ResponseWriter, req *http.Request) {
	a, err := rt.articles.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, articleToDTO(a, nil))
}

// List handles GET /api/v1/articles.
func (rt *ArticlesRouter) List(w http.ResponseWriter, req *http.Request) {
	articles, err := rt.articles.List(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	data := make([]dto.ArticleResponse, len(articles))
	for i, a := range articles {
		data[i] = articleToDTO(a, nil)
	}
	middleware.WriteJSON(w, http.StatusOK, dto.ArticleListResponse{Data: data})
}

// ListTags handles GET /api/v1/articles/{id}/tags.
func (rt *ArticlesRouter) ListTags(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")

	assignments, err := rt.assignments.FindByArticle(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, rt.logger)
		return
	}

	data := make([]dto.AssignmentResponse, len(assignments))
	for i, a := range assignments {
		data[i] = dto.AssignmentResponse{
			ArticleID: a.ArticleID(),
			TagID:     a.TagID(),
			CreatedAt: a.CreatedAt(),
		}
	}
	middleware.WriteJSON(w, http.StatusOK, dto.AssignmentListResponse{Data: data})
}

func articleToDTO(a article.Article, enqueued *bool) dto.ArticleResponse {
	return dto.ArticleResponse{
		ID:        a.ID(),
		Title:     a.Title(),
		Snippet:   a.Snippet(),
		Body:      a.Body(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
		Enqueued:  enqueued,
	}
}
