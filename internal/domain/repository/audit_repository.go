package repository

import (
	"context"
	"time"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/pkg/constants"
)

// AuditFilter narrows audit trail queries. Zero values mean "no constraint".
type AuditFilter struct {
	ActorID    string
	Action     constants.AuditAction
	EntityType string
	EntityID   string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// AuditRepository is append-only: entries can be written and queried,
// never changed.
//
//go:generate mockery --name AuditRepository --output ./mocks --filename audit_repository.go
type AuditRepository interface {
	// Save persists an audit entry.
	Save(ctx context.Context, entry *models.AuditLog) error

	// FindAll lists audit entries matching the filter, newest first.
	FindAll(ctx context.Context, filter AuditFilter) ([]*models.AuditLog, error)

	// Count returns the number of entries matching the filter.
	Count(ctx context.Context, filter AuditFilter) (int64, error)
}
