package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEventCreated          = "event.created"
	EventTypeEventUpdated          = "event.updated"
	EventTypeEventDeleted          = "event.deleted"
	EventTypeEventStatusChanged    = "event.status_changed"
	EventTypeRegistrationConfirmed = "registration.confirmed"
)

// ChangeKind classifies what an event update touched. The notification
// subscriber picks the message by priority: cancellation wins over a generic
// status change, which wins over a title-only change.
type ChangeKind string

const (
	ChangeCancelled ChangeKind = "cancelled"
	ChangeStatus    ChangeKind = "status"
	ChangeTitle     ChangeKind = "title"
	ChangeNone      ChangeKind = "none"
)

type EventCreatedEvent struct {
	BaseEvent
	EventID int64  `json:"event_id"`
	Title   string `json:"title"`
}

func NewEventCreatedEvent(eventID int64, title string) *EventCreatedEvent {
	return &EventCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEventCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"event_id": eventID,
				"title":    title,
			},
		},
		EventID: eventID,
		Title:   title,
	}
}

type EventUpdatedEvent struct {
	BaseEvent
	EventID   int64      `json:"event_id"`
	Title     string     `json:"title"`
	Change    ChangeKind `json:"change"`
	NewStatus string     `json:"new_status"`
}

func NewEventUpdatedEvent(eventID int64, title string, change ChangeKind, newStatus string) *EventUpdatedEvent {
	return &EventUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEventUpdated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"event_id":   eventID,
				"title":      title,
				"change":     string(change),
				"new_status": newStatus,
			},
		},
		EventID:   eventID,
		Title:     title,
		Change:    change,
		NewStatus: newStatus,
	}
}

type EventDeletedEvent struct {
	BaseEvent
	EventID int64  `json:"event_id"`
	Title   string `json:"title"`
}

func NewEventDeletedEvent(eventID int64, title string) *EventDeletedEvent {
	return &EventDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEventDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"event_id": eventID,
				"title":    title,
			},
		},
		EventID: eventID,
		Title:   title,
	}
}

type EventStatusChangedEvent struct {
	BaseEvent
	EventID   int64  `json:"event_id"`
	Title     string `json:"title"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewEventStatusChangedEvent(eventID int64, title, oldStatus, newStatus string) *EventStatusChangedEvent {
	return &EventStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEventStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"event_id":   eventID,
				"title":      title,
				"old_status": oldStatus,
				"new_status": newStatus,
			},
		},
		EventID:   eventID,
		Title:     title,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

type RegistrationConfirmedEvent struct {
	BaseEvent
	EventID    int64  `json:"event_id"`
	UserID     int64  `json:"user_id"`
	EventTitle string `json:"event_title"`
}

func NewRegistrationConfirmedEvent(eventID, userID int64, eventTitle string) *RegistrationConfirmedEvent {
	return &RegistrationConfirmedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRegistrationConfirmed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"event_id":    eventID,
				"user_id":     userID,
				"event_title": eventTitle,
			},
		},
		EventID:    eventID,
		UserID:     userID,
		EventTitle: eventTitle,
	}
}
