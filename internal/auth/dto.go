package auth

import "time"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterDTO for employee self-registration.
type RegisterDTO struct {
	Name               string     `json:"name"`
	Username           string     `json:"username"`
	Password           string     `json:"password"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	RegistrationNumber string     `json:"registration_number,omitempty"`
	DepartmentID       int64      `json:"department_id"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}

func (d RegisterDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	if d.DepartmentID == 0 {
		return ValidationError{Msg: "department_id is required"}
	}
	return nil
}
