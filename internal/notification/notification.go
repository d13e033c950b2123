package notification

import (
	"time"

	notificationDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/notification"
)

// Notification types as they appear on the wire.
const (
	TypeEventCreated          = "EVENT_CREATED"
	TypeEventUpdated          = "EVENT_UPDATED"
	TypeEventCancelled        = "EVENT_CANCELLED"
	TypeEventDeleted          = "EVENT_DELETED"
	TypeEventReminder         = "EVENT_REMINDER"
	TypeRegistrationDeadline  = "REGISTRATION_DEADLINE"
	TypeRegistrationConfirmed = "REGISTRATION_CONFIRMED"
)

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	EventID   *int64    `json:"event_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDataModel(n *Notification) *notificationDatamodel.Notification {
	return &notificationDatamodel.Notification{
		ID:      n.ID,
		UserID:  n.UserID,
		Type:    n.Type,
		Message: n.Message,
		EventID: n.EventID,
		IsRead:  n.IsRead,
	}
}

func FromDataModel(row *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      row.Type,
		Message:   row.Message,
		EventID:   row.EventID,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
}

func FromDataModelSlice(rows []*notificationDatamodel.Notification) []*Notification {
	out := make([]*Notification, len(rows))
	for i, row := range rows {
		out[i] = FromDataModel(row)
	}
	return out
}
