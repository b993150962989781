package repository

import (
	"context"
	"time"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/pkg/constants"
)

// TransactionFilter narrows transaction listings. Zero values mean "no
// constraint".
type TransactionFilter struct {
	CustomerID  string
	Type        constants.TransactionType
	FlaggedOnly bool
	From        time.Time
	To          time.Time
	Limit       int
	Offset      int
}

//go:generate mockery --name TransactionRepository --output ./mocks --filename transaction_repository.go
type TransactionRepository interface {
	// FindByID retrieves a transaction by ID.
	FindByID(ctx context.Context, id string) (*models.Transaction, error)

	// FindAll lists transactions matching the filter, newest first.
	FindAll(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)

	// CountByCustomer returns the number of transactions for a customer.
	CountByCustomer(ctx context.Context, customerID string) (int64, error)

	// CountCashDepositsSince counts a customer's cash deposits dated at or
	// after the cutoff. Used by the structuring detector.
	CountCashDepositsSince(ctx context.Context, customerID string, cutoff time.Time) (int64, error)

	// Save persists a new transaction.
	Save(ctx context.Context, txn *models.Transaction) error

	// Update persists changes to an existing transaction.
	Update(ctx context.Context, txn *models.Transaction) error
}
