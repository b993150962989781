// Package repository defines the storage interfaces for the domain layer.
// Implementations live under internal/infrastructure/persistence. Lookups
// return (nil, nil) when the record does not exist so the service layer
// decides whether absence is an error.
package repository

import (
	"context"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/pkg/constants"
)

// CustomerFilter narrows customer listings. Zero values mean "no constraint".
type CustomerFilter struct {
	RiskCategory       constants.RiskCategory
	VerificationStatus constants.VerificationStatus
	Search             string // matches name or NIK
	Limit              int
	Offset             int
}

//go:generate mockery --name CustomerRepository --output ./mocks --filename customer_repository.go
type CustomerRepository interface {
	// FindByID retrieves a customer by ID.
	FindByID(ctx context.Context, id string) (*models.Customer, error)

	// FindByNIK retrieves a customer by national identity number.
	FindByNIK(ctx context.Context, nik string) (*models.Customer, error)

	// FindAll lists customers matching the filter, newest registration first.
	FindAll(ctx context.Context, filter CustomerFilter) ([]*models.Customer, error)

	// Count returns the number of customers matching the filter.
	Count(ctx context.Context, filter CustomerFilter) (int64, error)

	// Save persists a new customer. A duplicate NIK is a conflict error.
	Save(ctx context.Context, customer *models.Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, customer *models.Customer) error

	// Delete removes a customer permanently. Only valid for customers with
	// no related alerts or transactions; the service layer enforces that.
	Delete(ctx context.Context, id string) error

	// Archive atomically moves a customer into the archive table and removes
	// the live record.
	Archive(ctx context.Context, archived *models.ArchivedCustomer) error

	// FindArchived lists archived customers, newest first.
	FindArchived(ctx context.Context, limit, offset int) ([]*models.ArchivedCustomer, error)
}
