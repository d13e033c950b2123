package directory

import "github.com/mfauzanap/event-registration/internal"

type RoleDTO struct {
	Name string `json:"name"`
}

func (d RoleDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type DepartmentDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (d DepartmentDTO) Validate() error {
	if d.Code == "" {
		return internal.NewValidationFieldError("code", "code is required", internal.ErrCodeValidationFailed)
	}
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
