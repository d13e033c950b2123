package event

import "time"

// Day truncates a timestamp to its UTC calendar day. All status comparisons
// run on day granularity so the derivation is stable within a day regardless
// of when the sweep or an interactive update happens to run.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DeriveStatus classifies an event relative to "today".
//
// Cancellation is terminal: once an event is cancelled the dates no longer
// matter until an explicit status override un-cancels it. Otherwise the
// three-way comparison runs against the registration window, falling back to
// the event's own dates when no window is set.
func DeriveStatus(e *Event, today time.Time) string {
	if e.IsCancelled() {
		return StatusCancelled
	}

	windowStart, windowEnd := e.RegistrationWindow()

	day := Day(today)
	switch {
	case day.Before(Day(windowStart)):
		return StatusUpcoming
	case day.After(Day(windowEnd)):
		return StatusClosed
	default:
		return StatusOpen
	}
}
