package directory

import (
	"log/slog"

	"github.com/mfauzanap/event-registration/internal"
)

// Repository persists the reference resources.
type Repository interface {
	ListRoles() ([]*Role, error)
	GetRole(id int64) (*Role, error)
	CreateRole(name string) (*Role, error)
	UpdateRole(id int64, name string) (*Role, error)
	DeleteRole(id int64) error
	RoleNameExists(name string, excludeID int64) (bool, error)
	RoleInUse(id int64) (bool, error)

	ListDepartments() ([]*Department, error)
	GetDepartment(id int64) (*Department, error)
	CreateDepartment(code, name string) (*Department, error)
	UpdateDepartment(id int64, code, name string) (*Department, error)
	DeleteDepartment(id int64) error
	DepartmentCodeExists(code string, excludeID int64) (bool, error)
	DepartmentInUse(id int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, lg *slog.Logger) *Service {
	if lg == nil {
		lg = slog.Default()
	}
	return &Service{repo: repo, logger: lg}
}

func (s *Service) ListRoles() ([]*Role, error) {
	return s.repo.ListRoles()
}

func (s *Service) GetRole(id int64) (*Role, error) {
	return s.repo.GetRole(id)
}

func (s *Service) CreateRole(dto RoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	taken, err := s.repo.RoleNameExists(dto.Name, 0)
	if err != nil {
		return nil, internal.NewInternalError("failed to check role name", err)
	}
	if taken {
		return nil, internal.ErrDuplicateReference
	}

	role, err := s.repo.CreateRole(dto.Name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("role created", "role_id", role.ID, "name", role.Name)
	return role, nil
}

func (s *Service) UpdateRole(id int64, dto RoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetRole(id); err != nil {
		return nil, err
	}
	taken, err := s.repo.RoleNameExists(dto.Name, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to check role name", err)
	}
	if taken {
		return nil, internal.ErrDuplicateReference
	}
	return s.repo.UpdateRole(id, dto.Name)
}

// DeleteRole refuses to remove a role that any user still references.
func (s *Service) DeleteRole(id int64) error {
	if _, err := s.repo.GetRole(id); err != nil {
		return err
	}
	inUse, err := s.repo.RoleInUse(id)
	if err != nil {
		return internal.NewInternalError("failed to check role usage", err)
	}
	if inUse {
		return internal.ErrRoleInUse
	}
	if err := s.repo.DeleteRole(id); err != nil {
		return err
	}
	s.logger.Info("role deleted", "role_id", id)
	return nil
}

func (s *Service) ListDepartments() ([]*Department, error) {
	return s.repo.ListDepartments()
}

func (s *Service) GetDepartment(id int64) (*Department, error) {
	return s.repo.GetDepartment(id)
}

func (s *Service) CreateDepartment(dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	taken, err := s.repo.DepartmentCodeExists(dto.Code, 0)
	if err != nil {
		return nil, internal.NewInternalError("failed to check department code", err)
	}
	if taken {
		return nil, internal.ErrDuplicateReference
	}

	dept, err := s.repo.CreateDepartment(dto.Code, dto.Name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("department created", "department_id", dept.ID, "code", dept.Code)
	return dept, nil
}

func (s *Service) UpdateDepartment(id int64, dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetDepartment(id); err != nil {
		return nil, err
	}
	taken, err := s.repo.DepartmentCodeExists(dto.Code, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to check department code", err)
	}
	if taken {
		return nil, internal.ErrDuplicateReference
	}
	return s.repo.UpdateDepartment(id, dto.Code, dto.Name)
}

func (s *Service) DeleteDepartment(id int64) error {
	if _, err := s.repo.GetDepartment(id); err != nil {
		return err
	}
	inUse, err := s.repo.DepartmentInUse(id)
	if err != nil {
		return internal.NewInternalError("failed to check department usage", err)
	}
	if inUse {
		return internal.NewConflictError("department is referenced by existing users", internal.ErrCodeDuplicateReference)
	}
	if err := s.repo.DeleteDepartment(id); err != nil {
		return err
	}
	s.logger.Info("department deleted", "department_id", id)
	return nil
}
