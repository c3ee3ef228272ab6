package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/newsroomhq/newstag/domain/queue"
	"github.com/newsroomhq/newstag/infrastructure/api/middleware"
	"github.com/newsroomhq/newstag/infrastructure/api/v1/dto"
)

// QueueRouter exposes queue depth for operators.
type QueueRouter struct {
	queue  queue.ItemStore
	logger *slog.Logger
}

// NewQueueRouter creates a new QueueRouter.
func NewQueueRouter(queueStore queue.ItemStore, logger *slog.Logger) *QueueRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueueRouter{
		queue:  queueStore,
		logger: logger,
	}
}

// Routes returns the chi router for queue endpoints.
func (rt *QueueRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", rt.Status)

	return router
}

// Status handles GET /api/v1/queue: item counts per status.
func (rt *QueueRouter) Status(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var resp dto.QueueStatusResponse
	for _, entry := range []struct {
		status queue.Status
		target *int64
	}{
		{queue.StatusPending, &resp.Pending},
		{queue.StatusProcessing, &resp.Processing},
		{queue.StatusCompleted, &resp.Completed},
		{queue.StatusFailed, &resp.Failed},
	} {
		count, err := rt.queue.Count(ctx, queue.WithStatus(entry.status))
		if err != nil {
			middleware.WriteError(w, req, err, rt.logger)
			return
		}
		*entry.target = count
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}
