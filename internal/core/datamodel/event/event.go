package event

import "time"

type Event struct {
	ID                    int64      `gorm:"primaryKey"`
	Title                 string     `gorm:"column:title;not null"`
	Description           string     `gorm:"column:description"`
	StartDate             time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate               time.Time  `gorm:"column:end_date;type:date;not null"`
	RegistrationStartDate *time.Time `gorm:"column:registration_start_date;type:date"`
	RegistrationEndDate   *time.Time `gorm:"column:registration_end_date;type:date"`
	Status                string     `gorm:"column:status;default:upcoming"`
	IsDeleted             bool       `gorm:"column:is_deleted;default:false"`
	DeletedAt             *time.Time `gorm:"column:deleted_at"`
	DeletedBy             *int64     `gorm:"column:deleted_by"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	FormFields []FormField `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

func (Event) TableName() string {
	return "events"
}

type FieldType struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (FieldType) TableName() string {
	return "field_types"
}

type FormField struct {
	ID                int64     `gorm:"primaryKey"`
	EventID           int64     `gorm:"column:event_id;not null;index"`
	FieldTypeID       int64     `gorm:"column:field_type_id;not null"`
	Label             string    `gorm:"column:label;not null"`
	Required          bool      `gorm:"column:required;default:false"`
	Sequence          int       `gorm:"column:sequence;not null"`
	AcceptedFileTypes string    `gorm:"column:accepted_file_types"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`

	FieldType FieldType        `gorm:"foreignKey:FieldTypeID"`
	Options   []DropdownOption `gorm:"foreignKey:FormFieldID;constraint:OnDelete:CASCADE"`
}

func (FormField) TableName() string {
	return "form_fields"
}

type DropdownOption struct {
	ID          int64     `gorm:"primaryKey"`
	FormFieldID int64     `gorm:"column:form_field_id;not null;index"`
	Value       string    `gorm:"column:value;not null"`
	IsDefault   bool      `gorm:"column:is_default;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (DropdownOption) TableName() string {
	return "dropdown_options"
}
