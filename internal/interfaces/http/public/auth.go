package public

import (
	"net/http"

	"github.com/sngm3741/feedbackpro/api/internal/interfaces/http/common"
)

// authVerifyHandler lets the dashboard check a reviewer token before loading any feedback.
func (h *Handler) authVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(r.Context(), h.logger, w, http.StatusInternalServerError, "reviewer missing from request context")
			return
		}

		common.WriteJSON(r.Context(), h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"user":   user,
		})
	}
}
