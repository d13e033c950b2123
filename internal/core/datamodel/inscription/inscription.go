package inscription

import "time"

type Inscription struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_inscriptions_user_event"`
	EventID   int64     `gorm:"column:event_id;not null;uniqueIndex:idx_inscriptions_user_event"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Responses []FieldResponse `gorm:"foreignKey:InscriptionID;constraint:OnDelete:CASCADE"`
}

func (Inscription) TableName() string {
	return "inscriptions"
}

type FieldResponse struct {
	ID               int64     `gorm:"primaryKey"`
	InscriptionID    int64     `gorm:"column:inscription_id;not null;index"`
	FormFieldID      int64     `gorm:"column:form_field_id;not null"`
	ResponseText     string    `gorm:"column:response_text"`
	ResponseFilePath string    `gorm:"column:response_file_path"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (FieldResponse) TableName() string {
	return "field_responses"
}
