package directory

import (
	"time"

	userDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/user"
)

// Role is a reference resource; users carry a role_id foreign key.
type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Department groups employees for reporting.
type Department struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func RoleFromDataModel(row *userDatamodel.Role) *Role {
	return &Role{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func DepartmentFromDataModel(row *userDatamodel.Department) *Department {
	return &Department{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
