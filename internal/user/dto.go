package user

import (
	"time"

	"github.com/mfauzanap/event-registration/internal"
)

// CreateUserDTO is used both for single admin creation and bulk import rows.
type CreateUserDTO struct {
	Name               string     `json:"name"`
	Username           string     `json:"username"`
	Password           string     `json:"password"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	RegistrationNumber string     `json:"registration_number,omitempty"`
	RoleID             int64      `json:"role_id"`
	DepartmentID       int64      `json:"department_id"`
}

func (d CreateUserDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if d.Username == "" {
		return internal.NewValidationFieldError("username", "username is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if d.RoleID == 0 {
		return internal.NewValidationFieldError("role_id", "role_id is required", internal.ErrCodeValidationFailed)
	}
	if d.DepartmentID == 0 {
		return internal.NewValidationFieldError("department_id", "department_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateUserDTO carries a partial update. Nil fields are left unchanged.
type UpdateUserDTO struct {
	Name               *string    `json:"name,omitempty"`
	Username           *string    `json:"username,omitempty"`
	Password           *string    `json:"password,omitempty"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	RegistrationNumber *string    `json:"registration_number,omitempty"`
	RoleID             *int64     `json:"role_id,omitempty"`
	DepartmentID       *int64     `json:"department_id,omitempty"`
}

func (d UpdateUserDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Username != nil && *d.Username == "" {
		return internal.NewValidationFieldError("username", "username cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Password != nil && len(*d.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

// BulkImportDTO wraps a bulk user import request.
type BulkImportDTO struct {
	Users []CreateUserDTO `json:"users"`
}

// BulkItemOutcome reports the fate of one imported row.
type BulkItemOutcome struct {
	Index    int    `json:"index"`
	Username string `json:"username"`
	Status   string `json:"status"` // "ok" or "failed"
	UserID   int64  `json:"user_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BulkImportResult aggregates per-row outcomes; one bad row never aborts the rest.
type BulkImportResult struct {
	Created  int               `json:"created"`
	Failed   int               `json:"failed"`
	Outcomes []BulkItemOutcome `json:"outcomes"`
}

func (r *BulkImportResult) AllSucceeded() bool {
	return r.Failed == 0
}
