package application

import (
	"context"
	"io"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

// FeedbackRepository is the durable record store.
type FeedbackRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	// List returns every record, newest createdAt first.
	List(ctx context.Context) ([]domain.Submission, error)
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	Delete(ctx context.Context, id string) error
}

// RecordLister is the read side a dashboard loads from.
type RecordLister interface {
	List(ctx context.Context) ([]domain.Submission, error)
}

// RecordDeleter removes a record by id.
type RecordDeleter interface {
	Delete(ctx context.Context, id string) error
}

// BlobStore stores opaque image bytes under a caller-chosen key.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// EventPublisher emits lifecycle events. Failures are logged by callers, never surfaced.
type EventPublisher interface {
	Publish(ctx context.Context, event FeedbackEvent) error
}

// InflightGuard marks record ids with a delete in progress.
type InflightGuard interface {
	// Acquire reports false when id is already marked.
	Acquire(ctx context.Context, id string) (bool, error)
	Release(ctx context.Context, id string) error
}

// DashboardInvalidator is notified after a record is created.
type DashboardInvalidator interface {
	InvalidateAll()
}

// DashboardReconciler drops a deleted record from every open dashboard.
type DashboardReconciler interface {
	RemoveRecord(id string)
}

// Attachment is one optional image sent with a submission.
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SubmitFeedbackCommand carries the decoded form. The field tag names the form key that
// validation messages are reported under.
type SubmitFeedbackCommand struct {
	Name                string `field:"name" validate:"required"`
	Contact             string `field:"contact"`
	DateOfExperience    string `field:"dateOfExperience" validate:"required,datetime=2006-01-02"`
	DateOfSubmission    string `field:"dateOfSubmission" validate:"omitempty,datetime=2006-01-02"`
	OverallExperience   int    `field:"overallExperience" validate:"min=1,max=5"`
	QualityOfService    string `field:"qualityOfService" validate:"required,oneof=Excellent Good Average Poor"`
	Timeliness          string `field:"timeliness" validate:"required,oneof=Excellent Good Average Poor"`
	Professionalism     string `field:"professionalism" validate:"required,oneof=Excellent Good Average Poor"`
	CommunicationEase   string `field:"communicationEase" validate:"required,oneof=Excellent Good Average Poor"`
	LikedMost           string `field:"likedMost" validate:"required"`
	Suggestions         string `field:"suggestions"`
	WouldRecommend      string `field:"wouldRecommend" validate:"required"`
	PermissionToPublish bool   `field:"permissionToPublish"`
	CanContactAgain     bool   `field:"canContactAgain"`

	BeforeImage *Attachment `validate:"-"`
	AfterImage  *Attachment `validate:"-"`
}

// IntakeConfig tunes the intake pipeline.
type IntakeConfig struct {
	EmailDomain string
}
