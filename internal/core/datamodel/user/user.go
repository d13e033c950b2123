package user

import "time"

type User struct {
	ID                 int64      `gorm:"primaryKey"`
	Name               string     `gorm:"column:name;not null"`
	Username           string     `gorm:"column:username;uniqueIndex;not null"`
	BirthDate          *time.Time `gorm:"column:birth_date;type:date"`
	PasswordHash       string     `gorm:"column:password_hash;not null"`
	RegistrationNumber string     `gorm:"column:registration_number"`
	RoleID             int64      `gorm:"column:role_id;not null"`
	DepartmentID       int64      `gorm:"column:department_id;not null"`
	ProfilePicturePath string     `gorm:"column:profile_picture_path"`
	IsDeleted          bool       `gorm:"column:is_deleted;default:false"`
	DeletedAt          *time.Time `gorm:"column:deleted_at"`
	DeletedBy          *int64     `gorm:"column:deleted_by"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Role       Role       `gorm:"foreignKey:RoleID"`
	Department Department `gorm:"foreignKey:DepartmentID"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}

type Department struct {
	ID        int64     `gorm:"primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Department) TableName() string {
	return "departements"
}
