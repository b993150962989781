package audit

import (
	"context"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
)

// DBSink persists audit entries through the audit repository. This is the
// sink the audit trail query API reads from.
type DBSink struct {
	repo repository.AuditRepository
}

// NewDBSink creates the database audit sink.
func NewDBSink(repo repository.AuditRepository) *DBSink {
	return &DBSink{repo: repo}
}

func (s *DBSink) Write(ctx context.Context, entry *models.AuditLog) error {
	return s.repo.Save(ctx, entry)
}
