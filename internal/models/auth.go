package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims carries the authenticated identity through a request.
type JWTClaims struct {
	UserID  string   `json:"uid"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    UserRole `json:"role"`
	EduRole EduRole  `json:"edu_role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the actor holds either admin privilege.
func (c *JWTClaims) IsAdmin() bool {
	if c == nil {
		return false
	}
	return c.Role == RoleAdmin || c.EduRole == EduRoleAdmin
}

// LoginRequest is the email/password login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a pending teacher account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ChangePasswordRequest rotates the password for the current user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// LoginResponse returns the issued session token and the user identity.
type LoginResponse struct {
	AccessToken   string        `json:"access_token"`
	ExpiresIn     int64         `json:"expires_in"`
	IssuedAt      time.Time     `json:"issued_at"`
	AccountStatus AccountStatus `json:"account_status"`
	User          UserInfo      `json:"user"`
}

// UserInfo is the identity subset exposed to clients.
type UserInfo struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         *string       `json:"email,omitempty"`
	Role          UserRole      `json:"role"`
	EduRole       EduRole       `json:"edu_role"`
	AccountStatus AccountStatus `json:"account_status"`
}
