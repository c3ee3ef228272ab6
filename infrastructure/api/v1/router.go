package v1

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/newsroomhq/newstag/application/service"
	"github.com/newsroomhq/newstag/domain/classify"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/infrastructure/api/middleware"
)

// Deps carries the services the v1 routes are built from.
type Deps struct {
	Articles    *service.Articles
	Classifier  *service.Classifier
	Vocabulary  *service.Vocabulary
	Queue       queue.ItemStore
	Assignments classify.AssignmentStore
	Logger      *slog.Logger
}

// Mount attaches all v1 routes under /api/v1. Mutating methods are
// protected by the API key when keys are configured.
func Mount(router chi.Router, deps Deps, auth middleware.AuthConfig) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.WriteProtect(auth))

		r.Mount("/articles", NewArticlesRouter(deps.Articles, deps.Assignments, deps.Logger).Routes())
		r.Mount("/classify", NewClassifyRouter(deps.Classifier, deps.Logger).Routes())
		r.Mount("/tags", NewTagsRouter(deps.Vocabulary, deps.Logger).Routes())
		r.Mount("/queue", NewQueueRouter(deps.Queue, deps.Logger).Routes())
	})
}
