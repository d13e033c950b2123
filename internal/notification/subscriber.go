package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mfauzanap/event-registration/internal/core/events"
)

// Notifier is the slice of Service the subscriber uses; tests swap it out.
type Notifier interface {
	NotifyUser(userID int64, ntype, message string, eventID *int64) error
	NotifyRegistrants(eventID int64, ntype, message string) error
	NotifyEmployees(eventID int64, ntype, message string) error
}

// Subscriber turns domain events into notification rows.
type Subscriber struct {
	notifier Notifier
	logger   *slog.Logger
}

func NewSubscriber(notifier Notifier, lg *slog.Logger) *Subscriber {
	if lg == nil {
		lg = slog.Default()
	}
	return &Subscriber{notifier: notifier, logger: lg}
}

// Register hooks the subscriber into the bus.
func (s *Subscriber) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeEventCreated, s.onEventCreated)
	bus.Subscribe(events.EventTypeEventUpdated, s.onEventUpdated)
	bus.Subscribe(events.EventTypeEventDeleted, s.onEventDeleted)
	bus.Subscribe(events.EventTypeEventStatusChanged, s.onEventStatusChanged)
	bus.Subscribe(events.EventTypeRegistrationConfirmed, s.onRegistrationConfirmed)
}

func (s *Subscriber) onEventCreated(ctx context.Context, evt events.Event) error {
	created, ok := evt.(*events.EventCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", evt.EventType())
	}
	msg := fmt.Sprintf("New event: %s", created.Title)
	return s.notifier.NotifyEmployees(created.EventID, TypeEventCreated, msg)
}

// onEventUpdated picks the message by change priority: cancellation beats a
// status change, which beats a title change.
func (s *Subscriber) onEventUpdated(ctx context.Context, evt events.Event) error {
	updated, ok := evt.(*events.EventUpdatedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", evt.EventType())
	}

	var ntype, msg string
	switch updated.Change {
	case events.ChangeCancelled:
		ntype = TypeEventCancelled
		msg = fmt.Sprintf("Event cancelled: %s", updated.Title)
	case events.ChangeStatus:
		ntype = TypeEventUpdated
		msg = fmt.Sprintf("Event %q is now %s", updated.Title, updated.NewStatus)
	case events.ChangeTitle:
		ntype = TypeEventUpdated
		msg = fmt.Sprintf("Event renamed: %s", updated.Title)
	default:
		s.logger.Debug("event update without notifiable change", "event_id", updated.EventID)
		return nil
	}

	return s.notifier.NotifyRegistrants(updated.EventID, ntype, msg)
}

func (s *Subscriber) onEventDeleted(ctx context.Context, evt events.Event) error {
	deleted, ok := evt.(*events.EventDeletedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", evt.EventType())
	}
	msg := fmt.Sprintf("Event deleted: %s", deleted.Title)
	return s.notifier.NotifyRegistrants(deleted.EventID, TypeEventDeleted, msg)
}

func (s *Subscriber) onEventStatusChanged(ctx context.Context, evt events.Event) error {
	changed, ok := evt.(*events.EventStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", evt.EventType())
	}
	msg := fmt.Sprintf("Event %q is now %s", changed.Title, changed.NewStatus)
	return s.notifier.NotifyRegistrants(changed.EventID, TypeEventUpdated, msg)
}

func (s *Subscriber) onRegistrationConfirmed(ctx context.Context, evt events.Event) error {
	confirmed, ok := evt.(*events.RegistrationConfirmedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", evt.EventType())
	}
	msg := fmt.Sprintf("You are registered for %s", confirmed.EventTitle)
	eventID := confirmed.EventID
	return s.notifier.NotifyUser(confirmed.UserID, TypeRegistrationConfirmed, msg, &eventID)
}
