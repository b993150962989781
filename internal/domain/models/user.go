package models

import (
	"time"

	"github.com/openkyc/kyc/pkg/errors"
)

// User is a staff account. Role is one of the identifiers known to the
// access package; PasswordHash is a bcrypt digest and never leaves the
// persistence boundary in responses.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks the account contract for creation.
func (u *User) Validate() error {
	switch {
	case u.Username == "":
		return errors.ErrValidation("username is required")
	case u.FullName == "":
		return errors.ErrValidation("full_name is required")
	case u.Role == "":
		return errors.ErrValidation("role is required")
	case u.PasswordHash == "":
		return errors.ErrValidation("password hash is required")
	}
	return nil
}
