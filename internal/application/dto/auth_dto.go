package dto

import (
	"time"

	"github.com/openkyc/kyc/internal/domain/models"
)

// LoginRequest authenticates a staff user.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=128"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse carries the session token and the authenticated identity.
type LoginResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

// UserCreateRequest provisions a staff account.
type UserCreateRequest struct {
	Username string `json:"username" validate:"required,min=3,max=128"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"required,max=256"`
	Role     string `json:"role" validate:"required"`
}

// UserResponse is the API representation of a user. The password hash never
// appears here.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	Active      bool      `json:"active"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user to its API shape.
func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        u.Role,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// NewUserResponses maps a slice of domain users.
func NewUserResponses(users []*models.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
