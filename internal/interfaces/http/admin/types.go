package admin

import "github.com/sngm3741/feedbackpro/api/internal/interfaces/http/common"

type feedbackListResponse struct {
	Items  []common.FeedbackResponse `json:"items"`
	Shown  int                       `json:"shown"`
	Total  int                       `json:"total"`
	Filter filterPayload             `json:"filter"`
}

type filterPayload struct {
	Search        string `json:"search,omitempty"`
	OverallRating string `json:"overallRating,omitempty"`
	CanContact    string `json:"canContact,omitempty"`
	DateFrom      string `json:"dateFrom,omitempty"`
	DateTo        string `json:"dateTo,omitempty"`
}

type feedbackDeleteResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Shown  int    `json:"shown"`
	Total  int    `json:"total"`
}
