package service

import (
	"context"
	"fmt"
	"time"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/domain/access"
	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
	domainservice "github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

// AuditAppService implements audit trail queries. Writes go through the
// domain AuditService; this service only reads.
type AuditAppService interface {
	// List retrieves audit entries matching the filter, newest first.
	List(ctx context.Context, req *dto.AuditListRequest) (*dto.ListResponse, error)
}

type auditAppService struct {
	entries repository.AuditRepository
	audit   domainservice.AuditService
	logger  logger.Logger
}

// NewAuditAppService creates the audit query service.
func NewAuditAppService(entries repository.AuditRepository, audit domainservice.AuditService, log logger.Logger) AuditAppService {
	return &auditAppService{
		entries: entries,
		audit:   audit,
		logger:  log.WithComponent("audit_app_service"),
	}
}

func (s *auditAppService) List(ctx context.Context, req *dto.AuditListRequest) (*dto.ListResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceAudit, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionViewAuditTrail)
		return nil, errors.ErrForbidden("role cannot view the audit trail")
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	filter := repository.AuditFilter{
		ActorID:    req.ActorID,
		Action:     constants.AuditAction(req.Action),
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}
	if req.From != "" {
		if t, err := time.Parse("2006-01-02", req.From); err == nil {
			filter.From = t
		}
	}
	if req.To != "" {
		if t, err := time.Parse("2006-01-02", req.To); err == nil {
			// Inclusive upper bound on the day.
			filter.To = t.Add(24 * time.Hour)
		}
	}

	entries, err := s.entries.FindAll(ctx, filter)
	if err != nil {
		return nil, errors.ErrInternal("audit query failed", err)
	}
	total, err := s.entries.Count(ctx, filter)
	if err != nil {
		return nil, errors.ErrInternal("audit count failed", err)
	}

	return dto.NewListResponse(dto.NewAuditLogResponses(entries), page, pageSize, total), nil
}

func (s *auditAppService) denied(ctx context.Context, actor Actor, action constants.AuditAction) {
	s.audit.Record(ctx, models.NewAuditLog(constants.ActionAccessDenied, constants.AuditResultFailure,
		fmt.Sprintf("denied %s for role %q", action, actor.Role)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("audit", "").
		WithResultCode(constants.ErrCodeForbidden))
}
