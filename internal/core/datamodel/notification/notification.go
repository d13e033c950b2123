package notification

import "time"

type Notification struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Type      string    `gorm:"column:type;not null"`
	Message   string    `gorm:"column:message;not null"`
	EventID   *int64    `gorm:"column:event_id"`
	IsRead    bool      `gorm:"column:is_read;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
