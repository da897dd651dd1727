package application

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockFeedbackRepository) List(ctx context.Context) ([]domain.Submission, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]domain.Submission)
	return records, args.Error(1)
}

func (m *MockFeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*domain.Submission)
	return record, args.Error(1)
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event FeedbackEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// staticLister serves a fixed collection and counts fetches.
type staticLister struct {
	records []domain.Submission
	err     error
	calls   int
}

func (l *staticLister) List(context.Context) ([]domain.Submission, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	out := make([]domain.Submission, len(l.records))
	copy(out, l.records)
	return out, nil
}

func sampleSubmission(id string, overall int) domain.Submission {
	return domain.Submission{
		ID:                id,
		Name:              "Customer " + id,
		Contact:           domain.Contact(id + "@gmail.com"),
		DateOfExperience:  "2024-05-01",
		DateOfSubmission:  "2024-05-02",
		OverallExperience: domain.OverallRating(overall),
		QualityOfService:  domain.RatingExcellent,
		Timeliness:        domain.RatingGood,
		Professionalism:   domain.RatingAverage,
		CommunicationEase: domain.RatingPoor,
		LikedMost:         "friendly staff",
		WouldRecommend:    "yes",
	}
}
