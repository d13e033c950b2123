package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

type mockAuthRepository struct {
	hashes map[string]string
	users  map[string]*auth.User
	byID   map[int64]*auth.User
	nextID int64
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		hashes: make(map[string]string),
		users:  make(map[string]*auth.User),
		byID:   make(map[int64]*auth.User),
		nextID: 1,
	}
}

func (m *mockAuthRepository) addUser(username, password, roleName string) *auth.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &auth.User{
		ID:       m.nextID,
		Username: username,
		Name:     username,
		RoleID:   2,
		RoleName: roleName,
	}
	m.nextID++
	m.hashes[username] = string(hash)
	m.users[username] = u
	m.byID[u.ID] = u
	return u
}

func (m *mockAuthRepository) GetCredentials(username string) (string, *auth.User, error) {
	u, ok := m.users[username]
	if !ok {
		return "", nil, internal.ErrUserNotFound
	}
	return m.hashes[username], u, nil
}

func (m *mockAuthRepository) GetUserByID(userID int64) (*auth.User, error) {
	u, ok := m.byID[userID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockAuthRepository) CreateEmployee(dto auth.RegisterDTO, passwordHash string) (*auth.User, error) {
	u := &auth.User{
		ID:       m.nextID,
		Username: dto.Username,
		Name:     dto.Name,
		RoleID:   2,
		RoleName: auth.RoleEmployee,
	}
	m.nextID++
	m.hashes[dto.Username] = passwordHash
	m.users[dto.Username] = u
	m.byID[u.ID] = u
	return u, nil
}

func (m *mockAuthRepository) UsernameExists(username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}

var _ = Describe("AuthService", func() {
	var (
		svc      *auth.Service
		mockRepo *mockAuthRepository
		tokenGen *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokenGen = auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Minute, time.Hour)
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost, lg)
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			mockRepo.addUser("ada", "correct-horse", auth.RoleEmployee)
		})

		It("returns a usable token pair for valid credentials", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())

			claims, err := svc.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Username).To(Equal("ada"))
		})

		It("rejects a wrong password with the same error as an unknown user", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Username: "ada", Password: "wrong"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())

			_, err = svc.Authenticate(auth.LoginDTO{Username: "nobody", Password: "correct-horse"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("rejects empty credentials before touching storage", func() {
			_, err := svc.Authenticate(auth.LoginDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a fresh pair from a valid refresh token", func() {
			mockRepo.addUser("ada", "correct-horse", auth.RoleEmployee)

			tokens, err := svc.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())

			refreshed, err := svc.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed.AccessToken).NotTo(BeEmpty())
		})

		It("rejects an access token used as a refresh token", func() {
			mockRepo.addUser("ada", "correct-horse", auth.RoleEmployee)

			tokens, err := svc.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())

			// Signed with the access secret, so the refresh secret rejects it.
			_, err = svc.RefreshTokens(tokens.AccessToken)
			Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
		})

		It("rejects garbage", func() {
			_, err := svc.RefreshTokens("not-a-token")
			Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
		})
	})

	Describe("Register", func() {
		validDTO := auth.RegisterDTO{
			Name:         "Grace Hopper",
			Username:     "grace",
			Password:     "longenough",
			DepartmentID: 1,
		}

		It("creates the employee and logs them in", func() {
			tokens, err := svc.Register(validDTO)
			Expect(err).NotTo(HaveOccurred())

			claims, err := svc.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Username).To(Equal("grace"))

			u, err := svc.GetUser(claims.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.RoleName).To(Equal(auth.RoleEmployee))
		})

		It("rejects a taken username", func() {
			mockRepo.addUser("grace", "whatever1", auth.RoleEmployee)

			_, err := svc.Register(validDTO)
			Expect(errors.Is(err, internal.ErrDuplicateUsername)).To(BeTrue())
		})

		It("rejects a short password", func() {
			dto := validDTO
			dto.Password = "short"
			_, err := svc.Register(dto)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("token expiry", func() {
		It("reports an expired access token as expired", func() {
			shortGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", -time.Minute, time.Hour)
			u := mockRepo.addUser("ada", "correct-horse", auth.RoleEmployee)

			token, err := shortGen.GenerateAccessToken(u)
			Expect(err).NotTo(HaveOccurred())

			_, err = shortGen.ValidateAccessToken(token)
			Expect(errors.Is(err, internal.ErrTokenExpired)).To(BeTrue())
		})
	})
})
