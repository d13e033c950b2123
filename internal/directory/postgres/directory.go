package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mfauzanap/event-registration/internal"
	userDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/user"
	"github.com/mfauzanap/event-registration/internal/directory"
)

// DirectoryRepository implements directory.Repository using GORM.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) directory.Repository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) ListRoles() ([]*directory.Role, error) {
	var rows []*userDatamodel.Role
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*directory.Role, len(rows))
	for i, row := range rows {
		out[i] = directory.RoleFromDataModel(row)
	}
	return out, nil
}

func (r *DirectoryRepository) GetRole(id int64) (*directory.Role, error) {
	var row userDatamodel.Role
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}
	return directory.RoleFromDataModel(&row), nil
}

func (r *DirectoryRepository) CreateRole(name string) (*directory.Role, error) {
	row := userDatamodel.Role{Name: name}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return directory.RoleFromDataModel(&row), nil
}

func (r *DirectoryRepository) UpdateRole(id int64, name string) (*directory.Role, error) {
	result := r.db.Model(&userDatamodel.Role{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, internal.ErrRoleNotFound
	}
	return r.GetRole(id)
}

func (r *DirectoryRepository) DeleteRole(id int64) error {
	result := r.db.Delete(&userDatamodel.Role{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrRoleNotFound
	}
	return nil
}

func (r *DirectoryRepository) RoleNameExists(name string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&userDatamodel.Role{}).Where("name = ?", name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// RoleInUse counts live users holding the role.
func (r *DirectoryRepository) RoleInUse(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("role_id = ? AND is_deleted = false", id).
		Count(&count).Error
	return count > 0, err
}

func (r *DirectoryRepository) ListDepartments() ([]*directory.Department, error) {
	var rows []*userDatamodel.Department
	if err := r.db.Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*directory.Department, len(rows))
	for i, row := range rows {
		out[i] = directory.DepartmentFromDataModel(row)
	}
	return out, nil
}

func (r *DirectoryRepository) GetDepartment(id int64) (*directory.Department, error) {
	var row userDatamodel.Department
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, err
	}
	return directory.DepartmentFromDataModel(&row), nil
}

func (r *DirectoryRepository) CreateDepartment(code, name string) (*directory.Department, error) {
	row := userDatamodel.Department{Code: code, Name: name}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return directory.DepartmentFromDataModel(&row), nil
}

func (r *DirectoryRepository) UpdateDepartment(id int64, code, name string) (*directory.Department, error) {
	result := r.db.Model(&userDatamodel.Department{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"code": code, "name": name})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, internal.ErrDepartmentNotFound
	}
	return r.GetDepartment(id)
}

func (r *DirectoryRepository) DeleteDepartment(id int64) error {
	result := r.db.Delete(&userDatamodel.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrDepartmentNotFound
	}
	return nil
}

func (r *DirectoryRepository) DepartmentCodeExists(code string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&userDatamodel.Department{}).Where("code = ?", code)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *DirectoryRepository) DepartmentInUse(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("department_id = ? AND is_deleted = false", id).
		Count(&count).Error
	return count > 0, err
}
