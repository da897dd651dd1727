package application

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

// IntakeService is the only path that creates records.
type IntakeService struct {
	cfg        IntakeConfig
	repo       FeedbackRepository
	uploads    *UploadCoordinator
	events     EventPublisher
	dashboards DashboardInvalidator
	validate   *validator.Validate
	location   *time.Location
	now        func() time.Time
	logger     *logging.Logger
}

type IntakeOption func(*IntakeService)

// WithDashboards marks the given dashboards stale after every successful create.
func WithDashboards(d DashboardInvalidator) IntakeOption {
	return func(s *IntakeService) { s.dashboards = d }
}

func WithEvents(p EventPublisher) IntakeOption {
	return func(s *IntakeService) { s.events = p }
}

// WithLocation sets the zone "today" is computed in for the submission date.
func WithLocation(loc *time.Location) IntakeOption {
	return func(s *IntakeService) { s.location = loc }
}

func WithClock(now func() time.Time) IntakeOption {
	return func(s *IntakeService) { s.now = now }
}

func WithLogger(l *logging.Logger) IntakeOption {
	return func(s *IntakeService) { s.logger = l }
}

func NewIntakeService(cfg IntakeConfig, repo FeedbackRepository, blobs BlobStore, opts ...IntakeOption) *IntakeService {
	s := &IntakeService{
		cfg:      cfg,
		repo:     repo,
		uploads:  NewUploadCoordinator(blobs),
		events:   NoopPublisher{},
		validate: newCommandValidator(),
		location: time.UTC,
		now:      time.Now,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates every field, uploads the attachments and writes one record.
// Validation failures touch neither the blob store nor the record store.
func (s *IntakeService) Submit(ctx context.Context, cmd SubmitFeedbackCommand) (*domain.Submission, error) {
	cmd = normalizeCommand(cmd)

	contact, err := s.validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	keys, err := s.uploads.Upload(ctx, cmd.BeforeImage, cmd.AfterImage)
	if err != nil {
		s.logger.Warn(ctx, "feedback upload failed", zap.Error(err))
		return nil, err
	}

	submission, err := s.buildSubmission(cmd, contact, keys)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		s.logger.Error(ctx, "feedback persist failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	if s.dashboards != nil {
		s.dashboards.InvalidateAll()
	}
	event := FeedbackEvent{
		Type:              EventSubmitted,
		SubmissionID:      submission.ID,
		OverallExperience: submission.OverallExperience.Int(),
		OccurredAt:        s.now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "publish feedback event failed", zap.String("submission_id", submission.ID), zap.Error(err))
	}
	s.logger.Info(ctx, "feedback submitted",
		zap.String("submission_id", submission.ID),
		zap.Bool("before_image", keys.Before.Present()),
		zap.Bool("after_image", keys.After.Present()),
	)
	return submission, nil
}

func (s *IntakeService) validateCommand(cmd SubmitFeedbackCommand) (domain.Contact, error) {
	verr := domain.NewValidationError()

	contact, _, err := domain.ValidateContact(cmd.Contact, s.cfg.EmailDomain)
	if err != nil {
		var fieldErr *domain.FieldError
		if !errors.As(err, &fieldErr) {
			return "", err
		}
		verr.AddError(fieldErr)
	}

	if err := s.validate.Struct(cmd); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return "", err
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), validationMessage(fe))
		}
	}

	if err := verr.OrNil(); err != nil {
		return "", err
	}
	return contact, nil
}

func (s *IntakeService) buildSubmission(cmd SubmitFeedbackCommand, contact domain.Contact, keys UploadedKeys) (*domain.Submission, error) {
	experienced, err := domain.NewCalendarDate(cmd.DateOfExperience)
	if err != nil {
		return nil, err
	}
	submitted := domain.CalendarDateOf(s.now(), s.location)
	if cmd.DateOfSubmission != "" {
		if submitted, err = domain.NewCalendarDate(cmd.DateOfSubmission); err != nil {
			return nil, err
		}
	}
	overall, err := domain.NewOverallRating(cmd.OverallExperience)
	if err != nil {
		return nil, err
	}
	ratings := make([]domain.ServiceRating, 0, 4)
	for _, value := range []string{cmd.QualityOfService, cmd.Timeliness, cmd.Professionalism, cmd.CommunicationEase} {
		rating, err := domain.NewServiceRating(value)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}

	return &domain.Submission{
		Name:                cmd.Name,
		Contact:             contact,
		DateOfExperience:    experienced,
		DateOfSubmission:    submitted,
		BeforeImageKey:      keys.Before,
		AfterImageKey:       keys.After,
		OverallExperience:   overall,
		QualityOfService:    ratings[0],
		Timeliness:          ratings[1],
		Professionalism:     ratings[2],
		CommunicationEase:   ratings[3],
		LikedMost:           cmd.LikedMost,
		Suggestions:         cmd.Suggestions,
		WouldRecommend:      cmd.WouldRecommend,
		PermissionToPublish: cmd.PermissionToPublish,
		CanContactAgain:     cmd.CanContactAgain,
	}, nil
}

// normalizeCommand trims surrounding whitespace so "required" rejects blank text.
// Contact is left untouched because its email branch is checked on the literal value.
func normalizeCommand(cmd SubmitFeedbackCommand) SubmitFeedbackCommand {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.DateOfExperience = strings.TrimSpace(cmd.DateOfExperience)
	cmd.DateOfSubmission = strings.TrimSpace(cmd.DateOfSubmission)
	cmd.LikedMost = strings.TrimSpace(cmd.LikedMost)
	cmd.Suggestions = strings.TrimSpace(cmd.Suggestions)
	cmd.WouldRecommend = strings.TrimSpace(cmd.WouldRecommend)
	return cmd
}

func newCommandValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

var fieldLabels = map[string]string{
	"name":              "Name",
	"dateOfExperience":  "Date of experience",
	"dateOfSubmission":  "Date of submission",
	"overallExperience": "Overall experience",
	"qualityOfService":  "Quality of service",
	"timeliness":        "Timeliness",
	"professionalism":   "Professionalism",
	"communicationEase": "Communication ease",
	"likedMost":         "Liked most",
	"wouldRecommend":    "Would recommend",
}

func validationMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "datetime":
		return label + " must be a date in YYYY-MM-DD format"
	case "min", "max":
		return label + " must be between 1 and 5"
	case "oneof":
		return label + " must be one of " + strings.Join(domain.ServiceRatingValues(), ", ")
	default:
		return label + " is invalid"
	}
}
