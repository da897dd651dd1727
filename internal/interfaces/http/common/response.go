package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Stage  string            `json:"stage,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(ctx context.Context, logger *logging.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Warn(ctx, "json encode failed", zap.Error(err))
	}
}

// WriteError writes a plain {"error": message} body.
func WriteError(ctx context.Context, logger *logging.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(ctx, logger, w, status, ErrorResponse{Error: message})
}

// WriteServiceError maps application and domain errors to a status and body.
func WriteServiceError(ctx context.Context, logger *logging.Logger, w http.ResponseWriter, err error) {
	status, body := ErrorStatus(err)
	WriteJSON(ctx, logger, w, status, body)
}

// ErrorStatus is the single place error kinds are translated into HTTP.
func ErrorStatus(err error) (int, ErrorResponse) {
	var verr *domain.ValidationError
	var uploadErr *application.UploadError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields}
	case errors.As(err, &uploadErr):
		return http.StatusBadGateway, ErrorResponse{Error: "image upload failed, please try again", Stage: string(uploadErr.Stage)}
	case errors.Is(err, application.ErrPersistFailed):
		return http.StatusInternalServerError, ErrorResponse{Error: "feedback could not be saved, please try again"}
	case errors.Is(err, application.ErrDeleteNotConfirmed):
		return http.StatusBadRequest, ErrorResponse{Error: "delete must be confirmed"}
	case errors.Is(err, application.ErrDeleteInFlight):
		return http.StatusConflict, ErrorResponse{Error: "delete already in progress"}
	case errors.Is(err, application.ErrDeleteFailed) && errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "feedback could not be deleted: not found"}
	case errors.Is(err, application.ErrDeleteFailed):
		return http.StatusBadGateway, ErrorResponse{Error: "feedback could not be deleted"}
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "feedback not found"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
	}
}
