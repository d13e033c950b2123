package report

// EventRegistrationCount aggregates registrations per event.
type EventRegistrationCount struct {
	EventID       int64  `db:"event_id" json:"event_id"`
	Title         string `db:"title" json:"title"`
	Status        string `db:"status" json:"status"`
	Registrations int64  `db:"registrations" json:"registrations"`
}

// DailyRegistrationCount buckets registrations by calendar day.
type DailyRegistrationCount struct {
	Day           string `db:"day" json:"day"`
	Registrations int64  `db:"registrations" json:"registrations"`
}

// DepartmentRegistrationCount aggregates registrations by department.
type DepartmentRegistrationCount struct {
	DepartmentID   int64  `db:"department_id" json:"department_id"`
	DepartmentName string `db:"department_name" json:"department_name"`
	Registrations  int64  `db:"registrations" json:"registrations"`
}

// StatusCount counts non-deleted events per status.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Events int64  `db:"events" json:"events"`
}

// Dashboard bundles the admin overview.
type Dashboard struct {
	EventStatusCounts         []StatusCount                 `json:"event_status_counts"`
	RegistrationsPerEvent     []EventRegistrationCount      `json:"registrations_per_event"`
	RegistrationsOverTime     []DailyRegistrationCount      `json:"registrations_over_time"`
	RegistrationsByDepartment []DepartmentRegistrationCount `json:"registrations_by_departement"`
}
