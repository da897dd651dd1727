package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/interfaces/http/common"
)

func (h *Handler) feedbackListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, ok := h.dashboardFor(w, r)
		if !ok {
			return
		}
		if !h.activate(w, r, board) {
			return
		}
		board.SetFilter(filterFromQuery(r.URL.Query()))
		common.WriteJSON(r.Context(), h.logger, w, http.StatusOK, h.toListResponse(board.View()))
	}
}

func (h *Handler) feedbackRefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, ok := h.dashboardFor(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		if err := board.Refresh(ctx); err != nil {
			h.logger.Error(r.Context(), "admin feedback refresh failed", zap.Error(err))
			common.WriteError(r.Context(), h.logger, w, http.StatusBadGateway, "failed to load feedback")
			return
		}
		common.WriteJSON(r.Context(), h.logger, w, http.StatusOK, h.toListResponse(board.View()))
	}
}

func (h *Handler) feedbackExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, ok := h.dashboardFor(w, r)
		if !ok {
			return
		}
		if !h.activate(w, r, board) {
			return
		}
		board.SetFilter(filterFromQuery(r.URL.Query()))
		view := board.View()

		body := application.RenderCSV(view.Items, h.mediaBaseURL)
		filename := application.ExportFileName(h.now().In(h.location))

		w.Header().Set("Content-Type", application.ExportContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			h.logger.Warn(r.Context(), "export write failed", zap.Error(err))
		}
	}
}

func (h *Handler) feedbackDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(r.Context(), h.logger, w, http.StatusBadRequest, "feedback id is required")
			return
		}
		board, ok := h.dashboardFor(w, r)
		if !ok {
			return
		}
		if !h.activate(w, r, board) {
			return
		}

		record, err := board.Open(id)
		if err != nil {
			common.WriteServiceError(r.Context(), h.logger, w, err)
			return
		}
		common.WriteJSON(r.Context(), h.logger, w, http.StatusOK, common.NewFeedbackResponse(record, h.mediaBaseURL))
	}
}

func (h *Handler) selectionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, ok := h.dashboardFor(w, r)
		if !ok {
			return
		}
		record, open := board.Selected()
		if !open {
			common.WriteError(r.Context(), h.logger, w, http.StatusNotFound, "no feedback is open")
			return
		}
		common.WriteJSON(r.Context(), h.logger, w, http.StatusOK, common.NewFeedbackResponse(record, h.mediaBaseURL))
	}
}

func (h *Handler) selectionCloseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, ok := h.dashboardFor(w, r)
		if !ok {
			return
		}
		board.Close()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) feedbackDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(r.Context(), h.logger, w, http.StatusBadRequest, "feedback id is required")
			return
		}
		board, ok := h.dashboardFor(w, r)
		if !ok {
			return
		}
		confirmed := common.ParseFormBool(r.URL.Query().Get("confirm"))

		// A delete that has been issued runs to completion even if the client goes away.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), common.RequestTimeout)
		defer cancel()

		if err := h.deletion.Delete(ctx, board, id, confirmed); err != nil {
			common.WriteServiceError(r.Context(), h.logger, w, err)
			return
		}

		view := board.View()
		common.WriteJSON(r.Context(), h.logger, w, http.StatusOK, feedbackDeleteResponse{
			Status: "deleted",
			ID:     id,
			Shown:  view.Shown,
			Total:  view.Total,
		})
	}
}

// activate loads the dashboard on first use or after it went stale.
func (h *Handler) activate(w http.ResponseWriter, r *http.Request, board *application.Dashboard) bool {
	ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
	defer cancel()

	if err := board.Activate(ctx); err != nil {
		h.logger.Error(r.Context(), "admin feedback load failed", zap.Error(err))
		common.WriteError(r.Context(), h.logger, w, http.StatusBadGateway, "failed to load feedback")
		return false
	}
	return true
}
