package user

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mfauzanap/event-registration/internal"
)

// Repository persists users for the administrative surface.
type Repository interface {
	List() ([]*User, error)
	GetByID(id int64) (*User, error)
	Create(dto CreateUserDTO, passwordHash string) (*User, error)
	Update(id int64, dto UpdateUserDTO, passwordHash string) (*User, error)
	SoftDelete(id, actorID int64, at time.Time) error
	UsernameExists(username string, excludeID int64) (bool, error)
	RoleExists(id int64) (bool, error)
	DepartmentExists(id int64) (bool, error)
	SetProfilePicture(id int64, path string) error
}

// FileStore stores uploaded profile pictures.
type FileStore interface {
	Save(fh *multipart.FileHeader, acceptedTypes string) (string, error)
}

const profilePictureTypes = ".jpg,.jpeg,.png,.gif,.webp"

type Service struct {
	repo       Repository
	files      FileStore
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo Repository, files FileStore, bcryptCost int, lg *slog.Logger) *Service {
	if lg == nil {
		lg = slog.Default()
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		files:      files,
		bcryptCost: bcryptCost,
		logger:     lg,
		now:        time.Now,
	}
}

func (s *Service) ListUsers() ([]*User, error) {
	return s.repo.List()
}

func (s *Service) GetUser(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.UsernameExists(dto.Username, 0)
	if err != nil {
		return nil, internal.NewInternalError("failed to check username", err)
	}
	if taken {
		return nil, internal.ErrDuplicateUsername
	}

	if ok, err := s.repo.RoleExists(dto.RoleID); err != nil {
		return nil, internal.NewInternalError("failed to check role", err)
	} else if !ok {
		return nil, internal.ErrRoleNotFound
	}
	if ok, err := s.repo.DepartmentExists(dto.DepartmentID); err != nil {
		return nil, internal.NewInternalError("failed to check department", err)
	} else if !ok {
		return nil, internal.ErrDepartmentNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	created, err := s.repo.Create(dto, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", created.ID, "username", created.Username)
	return created, nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}

	if dto.Username != nil {
		taken, err := s.repo.UsernameExists(*dto.Username, id)
		if err != nil {
			return nil, internal.NewInternalError("failed to check username", err)
		}
		if taken {
			return nil, internal.ErrDuplicateUsername
		}
	}
	if dto.RoleID != nil {
		if ok, err := s.repo.RoleExists(*dto.RoleID); err != nil {
			return nil, internal.NewInternalError("failed to check role", err)
		} else if !ok {
			return nil, internal.ErrRoleNotFound
		}
	}
	if dto.DepartmentID != nil {
		if ok, err := s.repo.DepartmentExists(*dto.DepartmentID); err != nil {
			return nil, internal.NewInternalError("failed to check department", err)
		} else if !ok {
			return nil, internal.ErrDepartmentNotFound
		}
	}

	var passwordHash string
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		passwordHash = string(hash)
	}

	updated, err := s.repo.Update(id, dto, passwordHash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id)
	return updated, nil
}

func (s *Service) SoftDeleteUser(id, actorID int64) error {
	if err := s.repo.SoftDelete(id, actorID, s.now()); err != nil {
		return err
	}
	s.logger.Info("user soft deleted", "user_id", id, "deleted_by", actorID)
	return nil
}

// BulkImport creates users row by row. A failing row is reported in its
// outcome and the remaining rows still run.
func (s *Service) BulkImport(dto BulkImportDTO) (*BulkImportResult, error) {
	if len(dto.Users) == 0 {
		return nil, internal.NewValidationError("users list is empty", internal.ErrCodeValidationFailed)
	}

	result := &BulkImportResult{}
	for i, row := range dto.Users {
		outcome := BulkItemOutcome{Index: i, Username: row.Username}
		created, err := s.CreateUser(row)
		if err != nil {
			outcome.Status = "failed"
			outcome.Error = err.Error()
			result.Failed++
			s.logger.Warn("bulk import row failed", "index", i, "username", row.Username, "error", err)
		} else {
			outcome.Status = "ok"
			outcome.UserID = created.ID
			result.Created++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	s.logger.Info("bulk import finished", "created", result.Created, "failed", result.Failed)
	return result, nil
}

// SetProfilePicture stores the uploaded image and records its path on the user.
func (s *Service) SetProfilePicture(id int64, fh *multipart.FileHeader) (*User, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}

	path, err := s.files.Save(fh, profilePictureTypes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetProfilePicture(id, path); err != nil {
		return nil, internal.NewInternalError(fmt.Sprintf("failed to save profile picture for user %d", id), err)
	}

	s.logger.Info("profile picture updated", "user_id", id, "path", path)
	return s.repo.GetByID(id)
}
