package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/core/events"
	"github.com/mfauzanap/event-registration/internal/event"
	"github.com/mfauzanap/event-registration/internal/notification"
)

// EventRepository is the slice of the event store the sweep needs.
type EventRepository interface {
	ListActive() ([]*event.Event, error)
	UpdateStatus(id int64, status string) error
}

// Publisher fans status changes out on the bus.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Notifier sends the reminder notifications directly; reminders have no
// domain mutation to hang a bus event on.
type Notifier interface {
	NotifyRegistrants(eventID int64, ntype, message string) error
}

// Windows holds the reminder look-ahead ranges relative to sweep time.
type Windows struct {
	EventReminderFrom    time.Duration
	EventReminderTo      time.Duration
	DeadlineReminderFrom time.Duration
	DeadlineReminderTo   time.Duration
}

// DefaultWindows targets events starting in roughly a day and registration
// windows closing in roughly two. The hour of slack on each side absorbs
// drift in the sweep schedule.
func DefaultWindows() Windows {
	return Windows{
		EventReminderFrom:    23 * time.Hour,
		EventReminderTo:      25 * time.Hour,
		DeadlineReminderFrom: 47 * time.Hour,
		DeadlineReminderTo:   49 * time.Hour,
	}
}

type Service struct {
	repo     EventRepository
	bus      Publisher
	notifier Notifier
	windows  Windows
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo EventRepository, bus Publisher, notifier Notifier, windows Windows, lg *slog.Logger) *Service {
	if lg == nil {
		lg = slog.Default()
	}
	if windows == (Windows{}) {
		windows = DefaultWindows()
	}
	return &Service{
		repo:     repo,
		bus:      bus,
		notifier: notifier,
		windows:  windows,
		logger:   lg,
		now:      time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Run executes one sweep: recompute statuses for live events and send the
// reminder notifications whose windows contain this sweep.
func (s *Service) Run(ctx context.Context) error {
	active, err := s.repo.ListActive()
	if err != nil {
		return internal.NewInternalError("failed to list active events", err)
	}

	now := s.now()
	s.logger.Info("sweep started", "active_events", len(active))

	for _, e := range active {
		s.recomputeStatus(ctx, e, now)
		s.sendReminders(e, now)
	}

	s.logger.Info("sweep finished")
	return nil
}

func (s *Service) recomputeStatus(ctx context.Context, e *event.Event, now time.Time) {
	derived := event.DeriveStatus(e, now)
	if derived == e.Status {
		return
	}

	if err := s.repo.UpdateStatus(e.ID, derived); err != nil {
		s.logger.Error("failed to persist status change",
			"event_id", e.ID, "from", e.Status, "to", derived, "error", err)
		return
	}

	s.logger.Info("event status swept", "event_id", e.ID, "from", e.Status, "to", derived)
	_ = s.bus.Publish(ctx, events.NewEventStatusChangedEvent(e.ID, e.Title, e.Status, derived))
	e.Status = derived
}

// sendReminders fires the day-before event reminder and the two-days-before
// registration deadline reminder when their windows contain this sweep.
// Failures are logged; a reminder is best-effort.
func (s *Service) sendReminders(e *event.Event, now time.Time) {
	if e.IsCancelled() {
		return
	}

	untilStart := e.StartDate.Sub(now)
	if untilStart >= s.windows.EventReminderFrom && untilStart <= s.windows.EventReminderTo {
		msg := fmt.Sprintf("Reminder: %s starts tomorrow", e.Title)
		if err := s.notifier.NotifyRegistrants(e.ID, notification.TypeEventReminder, msg); err != nil {
			s.logger.Error("failed to send event reminder", "event_id", e.ID, "error", err)
		}
	}

	_, windowEnd := e.RegistrationWindow()
	untilDeadline := windowEnd.Sub(now)
	if untilDeadline >= s.windows.DeadlineReminderFrom && untilDeadline <= s.windows.DeadlineReminderTo {
		msg := fmt.Sprintf("Registration for %s closes in two days", e.Title)
		if err := s.notifier.NotifyRegistrants(e.ID, notification.TypeRegistrationDeadline, msg); err != nil {
			s.logger.Error("failed to send deadline reminder", "event_id", e.ID, "error", err)
		}
	}
}
