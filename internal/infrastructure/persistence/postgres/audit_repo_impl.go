package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/logger"
)

type auditLogDBM struct {
	EventID    string    `gorm:"primaryKey;size:64"`
	Action     string    `gorm:"size:64;index"`
	ActorID    string    `gorm:"size:64;index"`
	ActorRole  string    `gorm:"size:32"`
	EntityType string    `gorm:"size:32;index"`
	EntityID   string    `gorm:"size:64;index"`
	Result     string    `gorm:"size:16"`
	ResultCode string    `gorm:"size:32"`
	IPAddress  string    `gorm:"size:64"`
	UserAgent  string    `gorm:"size:256"`
	TraceID    string    `gorm:"size:64"`
	Message    string    `gorm:"size:512"`
	Metadata   string    `gorm:"type:text"`
	Timestamp  time.Time `gorm:"index"`
}

func (auditLogDBM) TableName() string { return "audit_logs" }

func (m *auditLogDBM) toDomain() *models.AuditLog {
	eventID, _ := uuid.Parse(m.EventID)
	var metadata json.RawMessage
	if m.Metadata != "" {
		metadata = json.RawMessage(m.Metadata)
	}
	return &models.AuditLog{
		EventID:    eventID,
		Action:     constants.AuditAction(m.Action),
		ActorID:    m.ActorID,
		ActorRole:  m.ActorRole,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Result:     m.Result,
		ResultCode: constants.ErrorCode(m.ResultCode),
		IPAddress:  m.IPAddress,
		UserAgent:  m.UserAgent,
		TraceID:    m.TraceID,
		Message:    m.Message,
		Metadata:   metadata,
		Timestamp:  m.Timestamp,
	}
}

func auditLogFromDomain(e *models.AuditLog) *auditLogDBM {
	return &auditLogDBM{
		EventID:    e.EventID.String(),
		Action:     string(e.Action),
		ActorID:    e.ActorID,
		ActorRole:  e.ActorRole,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Result:     e.Result,
		ResultCode: string(e.ResultCode),
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		TraceID:    e.TraceID,
		Message:    e.Message,
		Metadata:   string(e.Metadata),
		Timestamp:  e.Timestamp,
	}
}

// AuditRepoImpl implements the append-only AuditRepository on GORM.
type AuditRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewAuditRepository creates the PostgreSQL audit repository.
func NewAuditRepository(db *gorm.DB, log logger.Logger) repository.AuditRepository {
	return &AuditRepoImpl{
		db:     db,
		logger: log.WithComponent("audit_repo"),
	}
}

func (r *AuditRepoImpl) Save(ctx context.Context, entry *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(auditLogFromDomain(entry)).Error; err != nil {
		r.logger.Error(ctx, "failed to save audit entry", err, logger.Fields{
			"event_id": entry.EventID.String(),
			"action":   string(entry.Action),
		})
		return err
	}
	return nil
}

func (r *AuditRepoImpl) FindAll(ctx context.Context, filter repository.AuditFilter) ([]*models.AuditLog, error) {
	var dbms []auditLogDBM
	err := r.filtered(ctx, filter).
		Order("timestamp DESC").
		Limit(limitOrDefault(filter.Limit)).
		Offset(filter.Offset).
		Find(&dbms).Error
	if err != nil {
		r.logger.Error(ctx, "failed to list audit entries", err)
		return nil, err
	}

	entries := make([]*models.AuditLog, 0, len(dbms))
	for i := range dbms {
		entries = append(entries, dbms[i].toDomain())
	}
	return entries, nil
}

func (r *AuditRepoImpl) Count(ctx context.Context, filter repository.AuditFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	if err != nil {
		r.logger.Error(ctx, "failed to count audit entries", err)
		return 0, err
	}
	return count, nil
}

func (r *AuditRepoImpl) filtered(ctx context.Context, filter repository.AuditFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&auditLogDBM{})
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", string(filter.Action))
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if !filter.From.IsZero() {
		q = q.Where("timestamp >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("timestamp <= ?", filter.To)
	}
	return q
}
