package common

import (
	"time"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

// FeedbackResponse is the JSON shape of one record, shared by the public and admin APIs.
type FeedbackResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Contact             string    `json:"contact"`
	DateOfExperience    string    `json:"dateOfExperience"`
	DateOfSubmission    string    `json:"dateOfSubmission"`
	OverallExperience   int       `json:"overallExperience"`
	QualityOfService    string    `json:"qualityOfService"`
	Timeliness          string    `json:"timeliness"`
	Professionalism     string    `json:"professionalism"`
	CommunicationEase   string    `json:"communicationEase"`
	LikedMost           string    `json:"likedMost"`
	Suggestions         string    `json:"suggestions"`
	WouldRecommend      string    `json:"wouldRecommend"`
	PermissionToPublish bool      `json:"permissionToPublish"`
	CanContactAgain     bool      `json:"canContactAgain"`
	BeforeImageKey      string    `json:"beforeImageKey,omitempty"`
	AfterImageKey       string    `json:"afterImageKey,omitempty"`
	BeforeImageURL      string    `json:"beforeImageUrl,omitempty"`
	AfterImageURL       string    `json:"afterImageUrl,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// NewFeedbackResponse resolves image keys against mediaBaseURL.
func NewFeedbackResponse(s domain.Submission, mediaBaseURL string) FeedbackResponse {
	return FeedbackResponse{
		ID:                  s.ID,
		Name:                s.Name,
		Contact:             s.Contact.String(),
		DateOfExperience:    s.DateOfExperience.String(),
		DateOfSubmission:    s.DateOfSubmission.String(),
		OverallExperience:   s.OverallExperience.Int(),
		QualityOfService:    s.QualityOfService.String(),
		Timeliness:          s.Timeliness.String(),
		Professionalism:     s.Professionalism.String(),
		CommunicationEase:   s.CommunicationEase.String(),
		LikedMost:           s.LikedMost,
		Suggestions:         s.Suggestions,
		WouldRecommend:      s.WouldRecommend,
		PermissionToPublish: s.PermissionToPublish,
		CanContactAgain:     s.CanContactAgain,
		BeforeImageKey:      s.BeforeImageKey.String(),
		AfterImageKey:       s.AfterImageKey.String(),
		BeforeImageURL:      application.BlobURL(mediaBaseURL, s.BeforeImageKey),
		AfterImageURL:       application.BlobURL(mediaBaseURL, s.AfterImageKey),
		CreatedAt:           s.CreatedAt,
	}
}
