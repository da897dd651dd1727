package admin

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

// DashboardProvider hands out the per-reviewer dashboard cache.
type DashboardProvider interface {
	Get(owner string) *application.Dashboard
}

// FeedbackDeleter is the deletion use-case.
type FeedbackDeleter interface {
	Delete(ctx context.Context, board *application.Dashboard, id string, confirmed bool) error
}

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger       *logging.Logger
	dashboards   DashboardProvider
	deletion     FeedbackDeleter
	mediaBaseURL string
	location     *time.Location
	now          func() time.Time
}

// Config provides dependencies for Handler.
type Config struct {
	Logger       *logging.Logger
	Dashboards   DashboardProvider
	Deletion     FeedbackDeleter
	MediaBaseURL string
	Location     *time.Location
	Now          func() time.Time
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	h := &Handler{
		logger:       cfg.Logger,
		dashboards:   cfg.Dashboards,
		deletion:     cfg.Deletion,
		mediaBaseURL: cfg.MediaBaseURL,
		location:     cfg.Location,
		now:          cfg.Now,
	}
	if h.logger == nil {
		h.logger = logging.Nop()
	}
	if h.location == nil {
		h.location = time.UTC
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/feedback", h.feedbackListHandler())
	r.Post("/feedback/refresh", h.feedbackRefreshHandler())
	r.Get("/feedback/export", h.feedbackExportHandler())
	r.Get("/feedback/selection", h.selectionHandler())
	r.Delete("/feedback/selection", h.selectionCloseHandler())
	r.Get("/feedback/{id}", h.feedbackDetailHandler())
	r.Delete("/feedback/{id}", h.feedbackDeleteHandler())
}
