package postgres

import (
	"gorm.io/gorm"

	"github.com/mfauzanap/event-registration/internal"
	inscriptionDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/inscription"
	notificationDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/notification"
	"github.com/mfauzanap/event-registration/internal/auth"
	"github.com/mfauzanap/event-registration/internal/notification"
)

// NotificationRepository implements notification.Repository using GORM.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	row := notification.ToDataModel(n)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	n.ID = row.ID
	n.CreatedAt = row.CreatedAt
	return nil
}

func (r *NotificationRepository) ListByUser(userID int64) ([]*notification.Notification, error) {
	var rows []*notificationDatamodel.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return notification.FromDataModelSlice(rows), nil
}

func (r *NotificationRepository) UnreadCount(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&notificationDatamodel.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkRead(id, userID int64) error {
	result := r.db.Model(&notificationDatamodel.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(userID int64) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) ListRegistrantIDs(eventID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&inscriptionDatamodel.Inscription{}).
		Where("event_id = ?", eventID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// ListEmployeeIDs returns every live user holding the employee role.
func (r *NotificationRepository) ListEmployeeIDs() ([]int64, error) {
	var ids []int64
	err := r.db.Table("users").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ? AND users.is_deleted = false", auth.RoleEmployee).
		Pluck("users.id", &ids).Error
	return ids, err
}
