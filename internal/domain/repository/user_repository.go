package repository

import (
	"context"

	"github.com/openkyc/kyc/internal/domain/models"
)

//go:generate mockery --name UserRepository --output ./mocks --filename user_repository.go
type UserRepository interface {
	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByUsername retrieves a user by username.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindAll lists all users.
	FindAll(ctx context.Context, limit, offset int) ([]*models.User, error)

	// Save persists a new user. A duplicate username is a conflict error.
	Save(ctx context.Context, user *models.User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *models.User) error
}
