package event

import (
	"time"

	eventDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/event"
)

const (
	StatusUpcoming  = "upcoming"
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusCancelled = "cancelled"
)

type Event struct {
	ID                    int64      `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               time.Time  `json:"end_date"`
	RegistrationStartDate *time.Time `json:"registration_start_date,omitempty"`
	RegistrationEndDate   *time.Time `json:"registration_end_date,omitempty"`
	Status                string     `json:"status"`
	IsDeleted             bool       `json:"-"`
	DeletedAt             *time.Time `json:"-"`
	DeletedBy             *int64     `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (e *Event) IsCancelled() bool {
	return e.Status == StatusCancelled
}

// RegistrationWindow returns the date range the status derivation compares
// against: the registration window when set, the event's own dates otherwise.
func (e *Event) RegistrationWindow() (time.Time, time.Time) {
	if e.RegistrationStartDate != nil && e.RegistrationEndDate != nil {
		return *e.RegistrationStartDate, *e.RegistrationEndDate
	}
	return e.StartDate, e.EndDate
}

func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusOpen, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

func ToDataModel(e *Event) *eventDatamodel.Event {
	return &eventDatamodel.Event{
		ID:                    e.ID,
		Title:                 e.Title,
		Description:           e.Description,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationEndDate:   e.RegistrationEndDate,
		Status:                e.Status,
		IsDeleted:             e.IsDeleted,
		DeletedAt:             e.DeletedAt,
		DeletedBy:             e.DeletedBy,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func FromDataModel(e *eventDatamodel.Event) *Event {
	return &Event{
		ID:                    e.ID,
		Title:                 e.Title,
		Description:           e.Description,
		StartDate:             e.StartDate,
		EndDate:               e.EndDate,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationEndDate:   e.RegistrationEndDate,
		Status:                e.Status,
		IsDeleted:             e.IsDeleted,
		DeletedAt:             e.DeletedAt,
		DeletedBy:             e.DeletedBy,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*eventDatamodel.Event) []*Event {
	result := make([]*Event, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
