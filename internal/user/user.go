package user

import (
	"time"

	userDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/user"
)

// User is the administrative view of an account. Password hashes never leave
// the repository layer.
type User struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Username           string     `json:"username"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	RegistrationNumber string     `json:"registration_number,omitempty"`
	RoleID             int64      `json:"role_id"`
	RoleName           string     `json:"role_name,omitempty"`
	DepartmentID       int64      `json:"department_id"`
	DepartmentName     string     `json:"department_name,omitempty"`
	ProfilePictureURL  string     `json:"profile_picture_url,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func FromDataModel(row *userDatamodel.User) *User {
	return &User{
		ID:                 row.ID,
		Name:               row.Name,
		Username:           row.Username,
		BirthDate:          row.BirthDate,
		RegistrationNumber: row.RegistrationNumber,
		RoleID:             row.RoleID,
		RoleName:           row.Role.Name,
		DepartmentID:       row.DepartmentID,
		DepartmentName:     row.Department.Name,
		ProfilePictureURL:  row.ProfilePicturePath,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*userDatamodel.User) []*User {
	out := make([]*User, len(rows))
	for i, row := range rows {
		out[i] = FromDataModel(row)
	}
	return out
}
