package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// User is the authenticated requester as resolved by the middleware.
type User struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Name              string `json:"name"`
	RoleID            int64  `json:"role_id"`
	RoleName          string `json:"role_name"`
	DepartmentID      int64  `json:"department_id"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.RoleName == RoleAdmin
}

func (u *User) HasRole(names ...string) bool {
	for _, n := range names {
		if u.RoleName == n {
			return true
		}
	}
	return false
}

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID            int64  `json:"user_id"`
	RoleID            int64  `json:"role_id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and verifies signed tokens.
type TokenGenerator interface {
	GenerateAccessToken(u *User) (string, error)
	GenerateRefreshToken(u *User) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
