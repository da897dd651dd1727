package application

import (
	"context"
	"time"
)

type EventType string

const (
	EventSubmitted EventType = "feedback.submitted"
	EventDeleted   EventType = "feedback.deleted"
)

// FeedbackEvent is the payload written to the event stream.
type FeedbackEvent struct {
	Type              EventType `json:"type"`
	SubmissionID      string    `json:"submissionId"`
	OverallExperience int       `json:"overallExperience,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, FeedbackEvent) error { return nil }
