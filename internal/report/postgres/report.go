package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mfauzanap/event-registration/internal/report"
)

// ReportRepository runs the dashboard aggregates as raw SQL over sqlx; the
// queries cut across tables and gain nothing from the ORM.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) RegistrationsPerEvent(ctx context.Context) ([]report.EventRegistrationCount, error) {
	const q = `
		SELECT e.id AS event_id,
		       e.title,
		       e.status,
		       COUNT(i.id) AS registrations
		FROM events e
		LEFT JOIN inscriptions i ON i.event_id = e.id
		WHERE e.is_deleted = false
		GROUP BY e.id, e.title, e.status
		ORDER BY registrations DESC, e.id ASC`

	var rows []report.EventRegistrationCount
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) RegistrationsOverTime(ctx context.Context, days int) ([]report.DailyRegistrationCount, error) {
	const q = `
		SELECT TO_CHAR(DATE(i.created_at), 'YYYY-MM-DD') AS day,
		       COUNT(*) AS registrations
		FROM inscriptions i
		WHERE i.created_at >= NOW() - ($1 || ' days')::interval
		GROUP BY DATE(i.created_at)
		ORDER BY day ASC`

	var rows []report.DailyRegistrationCount
	if err := r.db.SelectContext(ctx, &rows, q, days); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) RegistrationsByDepartment(ctx context.Context) ([]report.DepartmentRegistrationCount, error) {
	const q = `
		SELECT d.id AS department_id,
		       d.name AS department_name,
		       COUNT(i.id) AS registrations
		FROM departements d
		LEFT JOIN users u ON u.department_id = d.id AND u.is_deleted = false
		LEFT JOIN inscriptions i ON i.user_id = u.id
		GROUP BY d.id, d.name
		ORDER BY registrations DESC, d.name ASC`

	var rows []report.DepartmentRegistrationCount
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) EventStatusCounts(ctx context.Context) ([]report.StatusCount, error) {
	const q = `
		SELECT e.status,
		       COUNT(*) AS events
		FROM events e
		WHERE e.is_deleted = false
		GROUP BY e.status
		ORDER BY e.status ASC`

	var rows []report.StatusCount
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}
