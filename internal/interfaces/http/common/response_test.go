package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

func TestErrorStatus(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("contact", "Phone number must be exactly 10 digits")

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", verr, http.StatusBadRequest},
		{"upload", &application.UploadError{Stage: application.StageAfter, Err: errors.New("x")}, http.StatusBadGateway},
		{"persist", fmt.Errorf("%w: %w", application.ErrPersistFailed, errors.New("x")), http.StatusInternalServerError},
		{"unconfirmed", application.ErrDeleteNotConfirmed, http.StatusBadRequest},
		{"in flight", application.ErrDeleteInFlight, http.StatusConflict},
		{"delete missing", fmt.Errorf("%w: %w", application.ErrDeleteFailed, application.ErrNotFound), http.StatusNotFound},
		{"delete failed", fmt.Errorf("%w: %w", application.ErrDeleteFailed, errors.New("x")), http.StatusBadGateway},
		{"not found", application.ErrNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := ErrorStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestWriteServiceError_ValidationBody(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("contact", "Email must be a valid @gmail.com address")

	rec := httptest.NewRecorder()
	WriteServiceError(context.Background(), logging.Nop(), rec, verr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Email must be a valid @gmail.com address", body.Fields["contact"])
}

func TestParseIntDefault(t *testing.T) {
	v, ok := ParseIntDefault("", 5)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	v, ok = ParseIntDefault(" 3 ", 5)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = ParseIntDefault("three", 5)
	assert.False(t, ok)
}

func TestParseFormBool(t *testing.T) {
	for _, v := range []string{"true", "on", "1", "YES"} {
		assert.True(t, ParseFormBool(v), v)
	}
	for _, v := range []string{"", "false", "off", "no", "maybe"} {
		assert.False(t, ParseFormBool(v), v)
	}
}
