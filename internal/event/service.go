package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/core/events"
)

// Repository defines the data access methods for events. All reads exclude
// soft-deleted rows.
type Repository interface {
	Create(e *Event) error
	GetByID(id int64) (*Event, error)
	List(status string) ([]*Event, error)
	Update(e *Event) error
	SoftDelete(id, actorID int64, at time.Time) error
}

// Publisher is the slice of the event bus the service needs.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
	PublishSync(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   Repository
	bus    Publisher
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateEvent validates, persists with a derived initial status, and fans out
// a new-event notification to employees.
func (s *Service) CreateEvent(ctx context.Context, dto CreateEventDTO) (*Event, error) {
	e, err := dto.ToDomain(s.now())
	if err != nil {
		s.logger.Error("event validation failed", "error", err, "title", dto.Title)
		return nil, err
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create event", "error", err, "title", e.Title)
		return nil, err
	}

	s.logger.Info("event created",
		"event_id", e.ID,
		"title", e.Title,
		"status", e.Status)

	s.bus.Publish(ctx, events.NewEventCreatedEvent(e.ID, e.Title))

	return e, nil
}

func (s *Service) GetEvent(id int64) (*Event, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) ListEvents(status string) ([]*Event, error) {
	if status != "" && !ValidStatus(status) {
		return nil, internal.NewValidationError("unknown status value", internal.ErrCodeInvalidStatus)
	}
	return s.repo.List(status)
}

// UpdateEvent merges the provided fields, recomputes the status unless the
// request pins one, persists, and notifies registrants about what changed.
func (s *Service) UpdateEvent(ctx context.Context, id int64, dto UpdateEventDTO) (*Event, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldTitle := e.Title
	oldStatus := e.Status

	if err := dto.ApplyTo(e); err != nil {
		s.logger.Error("event update validation failed", "error", err, "event_id", id)
		return nil, err
	}

	if !dto.HasStatusOverride() {
		e.Status = DeriveStatus(e, s.now())
	}

	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update event", "error", err, "event_id", id)
		return nil, err
	}

	change := classifyChange(oldStatus, e.Status, oldTitle, e.Title)
	if change != events.ChangeNone {
		s.bus.Publish(ctx, events.NewEventUpdatedEvent(e.ID, e.Title, change, e.Status))
	}

	s.logger.Info("event updated",
		"event_id", e.ID,
		"old_status", oldStatus,
		"new_status", e.Status,
		"change", string(change))

	return e, nil
}

// SoftDelete notifies current registrants, then flips the deletion flag.
// The row is never physically removed.
func (s *Service) SoftDelete(ctx context.Context, id, actorID int64) error {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	// Registrants must be notified before the event disappears from reads.
	if err := s.bus.PublishSync(ctx, events.NewEventDeletedEvent(e.ID, e.Title)); err != nil {
		s.logger.Error("failed to notify registrants of deletion", "error", err, "event_id", id)
	}

	if err := s.repo.SoftDelete(id, actorID, s.now()); err != nil {
		s.logger.Error("failed to soft delete event", "error", err, "event_id", id)
		return err
	}

	s.logger.Info("event soft deleted", "event_id", id, "deleted_by", actorID)
	return nil
}

// classifyChange picks the highest-priority change for the notification
// message: cancellation beats a generic status change, which beats a
// title-only change.
func classifyChange(oldStatus, newStatus, oldTitle, newTitle string) events.ChangeKind {
	switch {
	case newStatus == StatusCancelled && oldStatus != StatusCancelled:
		return events.ChangeCancelled
	case newStatus != oldStatus:
		return events.ChangeStatus
	case newTitle != oldTitle:
		return events.ChangeTitle
	default:
		return events.ChangeNone
	}
}
