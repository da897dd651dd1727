package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

// FeedbackSubmitter is the intake use-case the form endpoint drives.
type FeedbackSubmitter interface {
	Submit(ctx context.Context, cmd application.SubmitFeedbackCommand) (*domain.Submission, error)
}

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger         *logging.Logger
	intake         FeedbackSubmitter
	mediaBaseURL   string
	maxUploadBytes int64
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         *logging.Logger
	Intake         FeedbackSubmitter
	MediaBaseURL   string
	MaxUploadBytes int64
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		logger:         logger,
		intake:         cfg.Intake,
		mediaBaseURL:   cfg.MediaBaseURL,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/feedback", h.feedbackCreateHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
}
