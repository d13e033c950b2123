package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mfauzanap/event-registration/internal"
	userDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/user"
	"github.com/mfauzanap/event-registration/internal/user"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List() ([]*user.User, error) {
	var rows []*userDatamodel.User
	err := r.db.Preload("Role").Preload("Department").
		Where("is_deleted = false").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(rows), nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	row, err := r.fetch(id)
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(row), nil
}

func (r *UserRepository) Create(dto user.CreateUserDTO, passwordHash string) (*user.User, error) {
	row := userDatamodel.User{
		Name:               dto.Name,
		Username:           dto.Username,
		BirthDate:          dto.BirthDate,
		PasswordHash:       passwordHash,
		RegistrationNumber: dto.RegistrationNumber,
		RoleID:             dto.RoleID,
		DepartmentID:       dto.DepartmentID,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return r.GetByID(row.ID)
}

func (r *UserRepository) Update(id int64, dto user.UpdateUserDTO, passwordHash string) (*user.User, error) {
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Username != nil {
		updates["username"] = *dto.Username
	}
	if passwordHash != "" {
		updates["password_hash"] = passwordHash
	}
	if dto.BirthDate != nil {
		updates["birth_date"] = *dto.BirthDate
	}
	if dto.RegistrationNumber != nil {
		updates["registration_number"] = *dto.RegistrationNumber
	}
	if dto.RoleID != nil {
		updates["role_id"] = *dto.RoleID
	}
	if dto.DepartmentID != nil {
		updates["department_id"] = *dto.DepartmentID
	}

	if len(updates) > 0 {
		result := r.db.Model(&userDatamodel.User{}).
			Where("id = ? AND is_deleted = false", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, internal.ErrUserNotFound
		}
	}
	return r.GetByID(id)
}

func (r *UserRepository) SoftDelete(id, actorID int64, at time.Time) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
			"deleted_by": actorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// UsernameExists checks for a live user holding the name; excludeID lets
// updates skip the user being edited.
func (r *UserRepository) UsernameExists(username string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&userDatamodel.User{}).
		Where("username = ? AND is_deleted = false", username)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) RoleExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.Role{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) DepartmentExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.Department{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) SetProfilePicture(id int64, path string) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ? AND is_deleted = false", id).
		Update("profile_picture_path", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) fetch(id int64) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.Preload("Role").Preload("Department").
		Where("id = ? AND is_deleted = false", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &row, nil
}
