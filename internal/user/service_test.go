package user_test

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockUserRepository struct {
	users       map[int64]*user.User
	deleted     map[int64]bool
	roles       map[int64]bool
	departments map[int64]bool
	createError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:       make(map[int64]*user.User),
		deleted:     make(map[int64]bool),
		roles:       map[int64]bool{1: true, 2: true},
		departments: map[int64]bool{1: true},
		nextID:      1,
	}
}

func (m *mockUserRepository) List() ([]*user.User, error) {
	var out []*user.User
	for id, u := range m.users {
		if m.deleted[id] {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok || m.deleted[id] {
		return nil, internal.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) Create(dto user.CreateUserDTO, passwordHash string) (*user.User, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	u := &user.User{
		ID:           m.nextID,
		Name:         dto.Name,
		Username:     dto.Username,
		RoleID:       dto.RoleID,
		DepartmentID: dto.DepartmentID,
	}
	m.nextID++
	m.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) Update(id int64, dto user.UpdateUserDTO, passwordHash string) (*user.User, error) {
	u, ok := m.users[id]
	if !ok || m.deleted[id] {
		return nil, internal.ErrUserNotFound
	}
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Username != nil {
		u.Username = *dto.Username
	}
	if dto.RoleID != nil {
		u.RoleID = *dto.RoleID
	}
	if dto.DepartmentID != nil {
		u.DepartmentID = *dto.DepartmentID
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) SoftDelete(id, actorID int64, at time.Time) error {
	if _, ok := m.users[id]; !ok || m.deleted[id] {
		return internal.ErrUserNotFound
	}
	m.deleted[id] = true
	return nil
}

func (m *mockUserRepository) UsernameExists(username string, excludeID int64) (bool, error) {
	for id, u := range m.users {
		if m.deleted[id] || id == excludeID {
			continue
		}
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) RoleExists(id int64) (bool, error) {
	return m.roles[id], nil
}

func (m *mockUserRepository) DepartmentExists(id int64) (bool, error) {
	return m.departments[id], nil
}

func (m *mockUserRepository) SetProfilePicture(id int64, path string) error {
	u, ok := m.users[id]
	if !ok || m.deleted[id] {
		return internal.ErrUserNotFound
	}
	u.ProfilePictureURL = path
	return nil
}

type mockPictureStore struct {
	saveError error
}

func (m *mockPictureStore) Save(fh *multipart.FileHeader, acceptedTypes string) (string, error) {
	if m.saveError != nil {
		return "", m.saveError
	}
	return "/uploads/" + fh.Filename, nil
}

var _ = Describe("UserService", func() {
	var (
		svc      *user.Service
		mockRepo *mockUserRepository
	)

	validDTO := func(username string) user.CreateUserDTO {
		return user.CreateUserDTO{
			Name:         "Ada Lovelace",
			Username:     username,
			Password:     "longenough",
			RoleID:       2,
			DepartmentID: 1,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = user.NewService(mockRepo, &mockPictureStore{}, 4, lg)
	})

	Describe("CreateUser", func() {
		It("creates a valid user", func() {
			created, err := svc.CreateUser(validDTO("ada"))
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
		})

		It("rejects a taken username", func() {
			_, err := svc.CreateUser(validDTO("ada"))
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.CreateUser(validDTO("ada"))
			Expect(errors.Is(err, internal.ErrDuplicateUsername)).To(BeTrue())
		})

		It("rejects a short password", func() {
			dto := validDTO("ada")
			dto.Password = "short"
			_, err := svc.CreateUser(dto)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unknown role", func() {
			dto := validDTO("ada")
			dto.RoleID = 99
			_, err := svc.CreateUser(dto)
			Expect(errors.Is(err, internal.ErrRoleNotFound)).To(BeTrue())
		})

		It("rejects an unknown department", func() {
			dto := validDTO("ada")
			dto.DepartmentID = 99
			_, err := svc.CreateUser(dto)
			Expect(errors.Is(err, internal.ErrDepartmentNotFound)).To(BeTrue())
		})
	})

	Describe("BulkImport", func() {
		It("creates every valid row", func() {
			result, err := svc.BulkImport(user.BulkImportDTO{
				Users: []user.CreateUserDTO{validDTO("ada"), validDTO("grace")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Created).To(Equal(2))
			Expect(result.Failed).To(Equal(0))
			Expect(result.AllSucceeded()).To(BeTrue())
		})

		It("keeps going past failing rows", func() {
			bad := validDTO("grace")
			bad.Password = "short"

			result, err := svc.BulkImport(user.BulkImportDTO{
				Users: []user.CreateUserDTO{validDTO("ada"), bad, validDTO("ada"), validDTO("mary")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Created).To(Equal(2))
			Expect(result.Failed).To(Equal(2))
			Expect(result.AllSucceeded()).To(BeFalse())
			Expect(result.Outcomes).To(HaveLen(4))

			// Outcomes keep their input order and name the failure.
			Expect(result.Outcomes[0].Status).To(Equal("ok"))
			Expect(result.Outcomes[1].Status).To(Equal("failed"))
			Expect(result.Outcomes[1].Error).NotTo(BeEmpty())
			Expect(result.Outcomes[2].Status).To(Equal("failed"))
			Expect(result.Outcomes[3].Status).To(Equal("ok"))
		})

		It("rejects an empty list", func() {
			_, err := svc.BulkImport(user.BulkImportDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SoftDeleteUser", func() {
		It("hides the user from reads", func() {
			created, err := svc.CreateUser(validDTO("ada"))
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.SoftDeleteUser(created.ID, 1)).To(Succeed())

			_, err = svc.GetUser(created.ID)
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})

		It("is a 404 when already deleted", func() {
			created, err := svc.CreateUser(validDTO("ada"))
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.SoftDeleteUser(created.ID, 1)).To(Succeed())
			err = svc.SoftDeleteUser(created.ID, 1)
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})
	})

	Describe("SetProfilePicture", func() {
		It("stores the file and records the path", func() {
			created, err := svc.CreateUser(validDTO("ada"))
			Expect(err).NotTo(HaveOccurred())

			updated, err := svc.SetProfilePicture(created.ID, &multipart.FileHeader{Filename: "me.png"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ProfilePictureURL).To(Equal("/uploads/me.png"))
		})
	})
})
