package admin

import (
	"net/http"
	"net/url"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/interfaces/http/common"
)

// filterFromQuery reads the dashboard filter. Values are passed through untouched so the
// filter engine sees exactly what the reviewer typed.
func filterFromQuery(query url.Values) application.FilterConfig {
	return application.FilterConfig{
		SearchTerm:    query.Get("search"),
		OverallRating: query.Get("overallRating"),
		CanContact:    query.Get("canContact"),
		DateFrom:      query.Get("dateFrom"),
		DateTo:        query.Get("dateTo"),
	}
}

func toFilterPayload(cfg application.FilterConfig) filterPayload {
	return filterPayload{
		Search:        cfg.SearchTerm,
		OverallRating: cfg.OverallRating,
		CanContact:    cfg.CanContact,
		DateFrom:      cfg.DateFrom,
		DateTo:        cfg.DateTo,
	}
}

func (h *Handler) toListResponse(view application.DashboardView) feedbackListResponse {
	items := make([]common.FeedbackResponse, 0, len(view.Items))
	for _, record := range view.Items {
		items = append(items, common.NewFeedbackResponse(record, h.mediaBaseURL))
	}
	return feedbackListResponse{
		Items:  items,
		Shown:  view.Shown,
		Total:  view.Total,
		Filter: toFilterPayload(view.Filter),
	}
}

// dashboardFor returns the caller's dashboard. Auth middleware guarantees a user.
func (h *Handler) dashboardFor(w http.ResponseWriter, r *http.Request) (*application.Dashboard, bool) {
	user, ok := common.UserFromContext(r.Context())
	if !ok {
		common.WriteError(r.Context(), h.logger, w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return h.dashboards.Get(user.ID), true
}
