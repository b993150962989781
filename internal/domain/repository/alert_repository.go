package repository

import (
	"context"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/pkg/constants"
)

// AlertFilter narrows alert listings. Zero values mean "no constraint".
type AlertFilter struct {
	CustomerID string
	Status     constants.AlertStatus
	Severity   constants.AlertSeverity
	Type       constants.AlertType
	AssignedTo string
	Limit      int
	Offset     int
}

//go:generate mockery --name AlertRepository --output ./mocks --filename alert_repository.go
type AlertRepository interface {
	// FindByID retrieves an alert by ID.
	FindByID(ctx context.Context, id string) (*models.Alert, error)

	// FindAll lists alerts matching the filter, newest first.
	FindAll(ctx context.Context, filter AlertFilter) ([]*models.Alert, error)

	// CountByCustomer returns the number of alerts attached to a customer.
	CountByCustomer(ctx context.Context, customerID string) (int64, error)

	// CountOpen returns the number of alerts not yet closed, optionally
	// limited to one customer.
	CountOpen(ctx context.Context, customerID string) (int64, error)

	// Save persists a new alert.
	Save(ctx context.Context, alert *models.Alert) error

	// Update persists changes to an existing alert.
	Update(ctx context.Context, alert *models.Alert) error
}
