package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestPublisher_Publish(t *testing.T) {
	writer := new(MockWriter)
	var sent []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil)

	event := application.FeedbackEvent{
		Type:              application.EventSubmitted,
		SubmissionID:      "rec-1",
		OverallExperience: 4,
		OccurredAt:        time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, NewPublisherWithWriter(writer, "feedback-events").Publish(context.Background(), event))

	require.Len(t, sent, 1)
	assert.Equal(t, "feedback-events", sent[0].Topic)
	assert.Equal(t, []byte("rec-1"), sent[0].Key)
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte("feedback.submitted")}}, sent[0].Headers)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(sent[0].Value, &payload))
	assert.Equal(t, "feedback.submitted", payload["type"])
	assert.Equal(t, "rec-1", payload["submissionId"])
	assert.Equal(t, float64(4), payload["overallExperience"])
}

func TestPublisher_WriteError(t *testing.T) {
	writer := new(MockWriter)
	cause := errors.New("leader not available")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(cause)

	err := NewPublisherWithWriter(writer, "t").Publish(context.Background(), application.FeedbackEvent{Type: application.EventDeleted})
	assert.ErrorIs(t, err, cause)
}
