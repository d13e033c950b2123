package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mfauzanap/event-registration/internal"
	eventDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/event"
	"github.com/mfauzanap/event-registration/internal/event"
)

// EventRepository implements event.Repository using GORM.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(e *event.Event) error {
	row := event.ToDataModel(e)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	e.ID = row.ID
	e.CreatedAt = row.CreatedAt
	e.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *EventRepository) GetByID(id int64) (*event.Event, error) {
	var row eventDatamodel.Event
	err := r.db.Where("id = ? AND is_deleted = false", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEventNotFound
		}
		return nil, err
	}
	return event.FromDataModel(&row), nil
}

func (r *EventRepository) List(status string) ([]*event.Event, error) {
	var rows []*eventDatamodel.Event
	q := r.db.Where("is_deleted = false").Order("start_date ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return event.FromDataModelSlice(rows), nil
}

func (r *EventRepository) Update(e *event.Event) error {
	e.UpdatedAt = time.Now()
	return r.db.Save(event.ToDataModel(e)).Error
}

// ListActive returns the non-deleted events the sweep still cares about.
func (r *EventRepository) ListActive() ([]*event.Event, error) {
	var rows []*eventDatamodel.Event
	err := r.db.Where("is_deleted = false AND status IN ?", []string{event.StatusUpcoming, event.StatusOpen}).
		Order("start_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return event.FromDataModelSlice(rows), nil
}

func (r *EventRepository) UpdateStatus(id int64, status string) error {
	result := r.db.Model(&eventDatamodel.Event{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) SoftDelete(id, actorID int64, at time.Time) error {
	result := r.db.Model(&eventDatamodel.Event{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
			"deleted_by": actorID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrEventNotFound
	}
	return nil
}
