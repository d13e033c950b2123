package event

import (
	"time"

	"github.com/mfauzanap/event-registration/internal"
)

const dateLayout = "2006-01-02"

// CreateEventDTO carries dates as strings so unparseable input surfaces as a
// validation error instead of a JSON decoding failure.
type CreateEventDTO struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	RegistrationStartDate string `json:"registration_start_date,omitempty"`
	RegistrationEndDate   string `json:"registration_end_date,omitempty"`
}

type UpdateEventDTO struct {
	Title                 *string `json:"title,omitempty"`
	Description           *string `json:"description,omitempty"`
	StartDate             *string `json:"start_date,omitempty"`
	EndDate               *string `json:"end_date,omitempty"`
	RegistrationStartDate *string `json:"registration_start_date,omitempty"`
	RegistrationEndDate   *string `json:"registration_end_date,omitempty"`
	Status                *string `json:"status,omitempty"`
}

type eventDates struct {
	start    time.Time
	end      time.Time
	regStart *time.Time
	regEnd   *time.Time
}

// ToDomain validates the payload against "today" and builds the new event.
func (dto CreateEventDTO) ToDomain(today time.Time) (*Event, error) {
	if dto.Title == "" {
		return nil, internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}

	dates, err := parseDates(dto.StartDate, dto.EndDate, dto.RegistrationStartDate, dto.RegistrationEndDate)
	if err != nil {
		return nil, err
	}

	if dates.start.Before(Day(today)) {
		return nil, internal.NewValidationFieldError("start_date", "start date cannot be in the past", internal.ErrCodeInvalidDateOrder)
	}

	if err := validateDateOrder(dates); err != nil {
		return nil, err
	}

	e := &Event{
		Title:                 dto.Title,
		Description:           dto.Description,
		StartDate:             dates.start,
		EndDate:               dates.end,
		RegistrationStartDate: dates.regStart,
		RegistrationEndDate:   dates.regEnd,
	}
	e.Status = DeriveStatus(e, today)
	return e, nil
}

// ApplyTo merges the provided fields onto an existing event and re-validates
// date ordering. Status recomputation is the service's job.
func (dto UpdateEventDTO) ApplyTo(e *Event) error {
	if dto.Title != nil {
		if *dto.Title == "" {
			return internal.NewValidationFieldError("title", "title cannot be empty", internal.ErrCodeValidationFailed)
		}
		e.Title = *dto.Title
	}
	if dto.Description != nil {
		e.Description = *dto.Description
	}

	startStr := e.StartDate.Format(dateLayout)
	endStr := e.EndDate.Format(dateLayout)
	regStartStr := ""
	regEndStr := ""
	if e.RegistrationStartDate != nil {
		regStartStr = e.RegistrationStartDate.Format(dateLayout)
	}
	if e.RegistrationEndDate != nil {
		regEndStr = e.RegistrationEndDate.Format(dateLayout)
	}

	if dto.StartDate != nil {
		startStr = *dto.StartDate
	}
	if dto.EndDate != nil {
		endStr = *dto.EndDate
	}
	if dto.RegistrationStartDate != nil {
		regStartStr = *dto.RegistrationStartDate
	}
	if dto.RegistrationEndDate != nil {
		regEndStr = *dto.RegistrationEndDate
	}

	dates, err := parseDates(startStr, endStr, regStartStr, regEndStr)
	if err != nil {
		return err
	}
	if err := validateDateOrder(dates); err != nil {
		return err
	}

	e.StartDate = dates.start
	e.EndDate = dates.end
	e.RegistrationStartDate = dates.regStart
	e.RegistrationEndDate = dates.regEnd

	if dto.Status != nil {
		if !ValidStatus(*dto.Status) {
			return internal.NewValidationError("unknown status value", internal.ErrCodeInvalidStatus)
		}
		e.Status = *dto.Status
	}
	return nil
}

// HasStatusOverride reports whether the update explicitly pins the status.
func (dto UpdateEventDTO) HasStatusOverride() bool {
	return dto.Status != nil
}

func parseDates(start, end, regStart, regEnd string) (eventDates, error) {
	var dates eventDates

	if start == "" || end == "" {
		return dates, internal.NewValidationError("start_date and end_date are required", internal.ErrCodeValidationFailed)
	}

	var err error
	dates.start, err = time.ParseInLocation(dateLayout, start, time.UTC)
	if err != nil {
		return dates, internal.NewValidationFieldError("start_date", "start date is not a valid date", internal.ErrCodeInvalidDate)
	}
	dates.end, err = time.ParseInLocation(dateLayout, end, time.UTC)
	if err != nil {
		return dates, internal.NewValidationFieldError("end_date", "end date is not a valid date", internal.ErrCodeInvalidDate)
	}

	if regStart != "" {
		t, err := time.ParseInLocation(dateLayout, regStart, time.UTC)
		if err != nil {
			return dates, internal.NewValidationFieldError("registration_start_date", "registration start date is not a valid date", internal.ErrCodeInvalidDate)
		}
		dates.regStart = &t
	}
	if regEnd != "" {
		t, err := time.ParseInLocation(dateLayout, regEnd, time.UTC)
		if err != nil {
			return dates, internal.NewValidationFieldError("registration_end_date", "registration end date is not a valid date", internal.ErrCodeInvalidDate)
		}
		dates.regEnd = &t
	}

	if (dates.regStart == nil) != (dates.regEnd == nil) {
		return dates, internal.NewValidationError("registration window requires both start and end dates", internal.ErrCodeValidationFailed)
	}

	return dates, nil
}

func validateDateOrder(dates eventDates) error {
	if dates.end.Before(dates.start) {
		return internal.NewValidationFieldError("end_date", "end date must not be before start date", internal.ErrCodeInvalidDateOrder)
	}

	if dates.regStart != nil && dates.regEnd != nil {
		if dates.regStart.After(dates.start) {
			return internal.NewValidationFieldError("registration_start_date", "registration must open on or before the event start", internal.ErrCodeInvalidDateOrder)
		}
		if dates.regEnd.Before(*dates.regStart) {
			return internal.NewValidationFieldError("registration_end_date", "registration end must not be before registration start", internal.ErrCodeInvalidDateOrder)
		}
		if dates.regEnd.After(dates.end) {
			return internal.NewValidationFieldError("registration_end_date", "registration must close on or before the event end", internal.ErrCodeInvalidDateOrder)
		}
	}
	return nil
}
