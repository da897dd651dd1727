package domain

import "time"

// Submission is one stored feedback record. It is never updated, only deleted.
type Submission struct {
	ID                  string
	Name                string
	Contact             Contact
	DateOfExperience    CalendarDate
	DateOfSubmission    CalendarDate
	BeforeImageKey      BlobKey
	AfterImageKey       BlobKey
	OverallExperience   OverallRating
	QualityOfService    ServiceRating
	Timeliness          ServiceRating
	Professionalism     ServiceRating
	CommunicationEase   ServiceRating
	LikedMost           string
	Suggestions         string
	WouldRecommend      string
	PermissionToPublish bool
	CanContactAgain     bool
	CreatedAt           time.Time
}
