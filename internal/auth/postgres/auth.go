package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/auth"
	userDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(username string) (string, *auth.User, error) {
	var row userDatamodel.User
	err := r.db.Preload("Role").
		Where("username = ? AND is_deleted = false", username).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, internal.ErrUserNotFound
		}
		return "", nil, err
	}
	return row.PasswordHash, toAuthUser(&row), nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var row userDatamodel.User
	err := r.db.Preload("Role").
		Where("id = ? AND is_deleted = false", userID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return toAuthUser(&row), nil
}

func (r *Repository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateEmployee(dto auth.RegisterDTO, passwordHash string) (*auth.User, error) {
	var role userDatamodel.Role
	if err := r.db.Where("name = ?", auth.RoleEmployee).First(&role).Error; err != nil {
		return nil, internal.ErrRoleNotFound
	}

	var dept userDatamodel.Department
	if err := r.db.Where("id = ?", dto.DepartmentID).First(&dept).Error; err != nil {
		return nil, internal.ErrDepartmentNotFound
	}

	row := userDatamodel.User{
		Name:               dto.Name,
		Username:           dto.Username,
		BirthDate:          dto.BirthDate,
		PasswordHash:       passwordHash,
		RegistrationNumber: dto.RegistrationNumber,
		RoleID:             role.ID,
		DepartmentID:       dept.ID,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}

	row.Role = role
	return toAuthUser(&row), nil
}

func toAuthUser(row *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:                row.ID,
		Username:          row.Username,
		Name:              row.Name,
		RoleID:            row.RoleID,
		RoleName:          row.Role.Name,
		DepartmentID:      row.DepartmentID,
		ProfilePictureURL: row.ProfilePicturePath,
	}
}
