package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/accounthub/accounts-api/internal/domain"
)

// Common request/response structures

// CreateUserRequest defines the payload for the registration endpoint.
type CreateUserRequest struct {
	Username string     `json:"username" validate:"required,min=1,max=64"`
	Password string     `json:"password" validate:"required,min=1"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// LogoutRequest defines the payload for the logout endpoint. The session
// token identifies the caller; there is no other credential on this path.
type LogoutRequest struct {
	Token string `json:"token" validate:"required"`
}

// UpdateUserRequest defines the payload for the profile update endpoint.
// Absent fields leave the stored values unchanged.
type UpdateUserRequest struct {
	Username string     `json:"username,omitempty" validate:"omitempty,min=1,max=64"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// UserResponse is the public representation of an account. The credential
// and the session token are never part of it.
type UserResponse struct {
	ID        uuid.UUID           `json:"id"`
	Username  string              `json:"username"`
	Session   domain.SessionState `json:"session"`
	Status    domain.UserStatus   `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Birthday  *time.Time          `json:"birthday,omitempty"`
}

// AuthUserResponse extends UserResponse with the session token. It is only
// returned by the endpoints that establish a session (register, login), so
// the caller can present the token at logout.
type AuthUserResponse struct {
	UserResponse
	Token string `json:"token"`
}

// NewUserResponse converts a domain user into its public representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Session:   user.Session,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		Birthday:  user.Birthday,
	}
}

// NewAuthUserResponse converts a domain user into its authenticated
// representation including the session token.
func NewAuthUserResponse(user *domain.User) AuthUserResponse {
	return AuthUserResponse{
		UserResponse: NewUserResponse(user),
		Token:        user.Token,
	}
}
