package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

// DeletionService deletes records and keeps dashboards consistent with the store.
type DeletionService struct {
	repo       RecordDeleter
	guard      InflightGuard
	events     EventPublisher
	reconciler DashboardReconciler
	now        func() time.Time
	logger     *logging.Logger
}

func NewDeletionService(repo RecordDeleter, guard InflightGuard, events EventPublisher, reconciler DashboardReconciler, logger *logging.Logger) *DeletionService {
	if guard == nil {
		guard = NewMemoryInflightGuard()
	}
	if events == nil {
		events = NoopPublisher{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &DeletionService{
		repo:       repo,
		guard:      guard,
		events:     events,
		reconciler: reconciler,
		now:        time.Now,
		logger:     logger,
	}
}

// Delete removes id from the store. The dashboard collection changes only on success.
// A second delete of the same id while the first is running gets ErrDeleteInFlight.
func (s *DeletionService) Delete(ctx context.Context, board *Dashboard, id string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	acquired, err := s.guard.Acquire(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: mark in flight: %w", ErrDeleteFailed, err)
	}
	if !acquired {
		return ErrDeleteInFlight
	}
	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), id); err != nil {
			s.logger.Warn(ctx, "release delete marker failed", zap.String("submission_id", id), zap.Error(err))
		}
	}()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "feedback delete failed", zap.String("submission_id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	// The acting board may not be registered with the reconciler. Remove is idempotent,
	// so a registered board seeing the id twice is harmless.
	if board != nil {
		board.Remove(id)
	}
	if s.reconciler != nil {
		s.reconciler.RemoveRecord(id)
	}

	event := FeedbackEvent{Type: EventDeleted, SubmissionID: id, OccurredAt: s.now().UTC()}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "publish feedback event failed", zap.String("submission_id", id), zap.Error(err))
	}
	s.logger.Info(ctx, "feedback deleted", zap.String("submission_id", id))
	return nil
}

// MemoryInflightGuard is a process-local set of in-flight ids.
type MemoryInflightGuard struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewMemoryInflightGuard() *MemoryInflightGuard {
	return &MemoryInflightGuard{ids: make(map[string]struct{})}
}

func (g *MemoryInflightGuard) Acquire(_ context.Context, id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.ids[id]; busy {
		return false, nil
	}
	g.ids[id] = struct{}{}
	return true, nil
}

func (g *MemoryInflightGuard) Release(_ context.Context, id string) error {
	g.mu.Lock()
	delete(g.ids, id)
	g.mu.Unlock()
	return nil
}
