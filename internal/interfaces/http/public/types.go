package public

import "github.com/sngm3741/feedbackpro/api/internal/interfaces/http/common"

// Form keys of the feedback submission.
const (
	fieldName                = "name"
	fieldContact             = "contact"
	fieldDateOfExperience    = "dateOfExperience"
	fieldDateOfSubmission    = "dateOfSubmission"
	fieldOverallExperience   = "overallExperience"
	fieldQualityOfService    = "qualityOfService"
	fieldTimeliness          = "timeliness"
	fieldProfessionalism     = "professionalism"
	fieldCommunicationEase   = "communicationEase"
	fieldLikedMost           = "likedMost"
	fieldSuggestions         = "suggestions"
	fieldWouldRecommend      = "wouldRecommend"
	fieldPermissionToPublish = "permissionToPublish"
	fieldCanContactAgain     = "canContactAgain"
	fileBeforeImage          = "beforeImage"
	fileAfterImage           = "afterImage"
)

const (
	defaultOverallExperience = 5
	defaultServiceRating     = "Excellent"
)

type createFeedbackResponse struct {
	Status   string                  `json:"status"`
	Feedback common.FeedbackResponse `json:"feedback"`
}
