package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/domain/access"
	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
	domainservice "github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

// AlertAppService implements the alert management use cases.
type AlertAppService interface {
	// Create raises a new alert against a customer.
	Create(ctx context.Context, req *dto.AlertCreateRequest) (*dto.AlertResponse, error)

	// Get retrieves a single alert.
	Get(ctx context.Context, id string) (*dto.AlertResponse, error)

	// List retrieves alerts matching the filter.
	List(ctx context.Context, req *dto.AlertListRequest) (*dto.ListResponse, error)

	// StartInvestigation moves an open alert to In Progress.
	StartInvestigation(ctx context.Context, id string, req *dto.AlertAssignRequest) (*dto.AlertResponse, error)

	// Close resolves an alert; the response note lands on the customer's
	// case notes.
	Close(ctx context.Context, id string, req *dto.AlertCloseRequest) (*dto.AlertResponse, error)

	// Escalate raises an alert to High severity under the compliance team.
	// Requires approve permission on the alert resource.
	Escalate(ctx context.Context, id string) (*dto.AlertResponse, error)
}

type alertAppService struct {
	alerts    repository.AlertRepository
	customers repository.CustomerRepository
	cache     CustomerCache
	audit     domainservice.AuditService
	logger    logger.Logger
}

// NewAlertAppService creates the alert application service.
func NewAlertAppService(
	alerts repository.AlertRepository,
	customers repository.CustomerRepository,
	cache CustomerCache,
	audit domainservice.AuditService,
	log logger.Logger,
) AlertAppService {
	return &alertAppService{
		alerts:    alerts,
		customers: customers,
		cache:     cache,
		audit:     audit,
		logger:    log.WithComponent("alert_app_service"),
	}
}

func (s *alertAppService) Create(ctx context.Context, req *dto.AlertCreateRequest) (*dto.AlertResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceAlert, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionCreateAlert, "")
		return nil, errors.ErrForbidden("role cannot create alerts")
	}

	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, errors.ErrInternal("customer lookup failed", err)
	}
	if customer == nil {
		return nil, errors.ErrNotFound("customer", req.CustomerID)
	}

	now := time.Now().UTC()
	assignedTo := req.AssignedTo
	if assignedTo == "" {
		assignedTo = actor.Username
	}
	alert := &models.Alert{
		ID:          uuid.New().String(),
		CustomerID:  req.CustomerID,
		Date:        now,
		Type:        constants.AlertType(req.Type),
		Description: req.Description,
		Status:      constants.AlertStatusOpen,
		Severity:    constants.AlertSeverity(req.Severity),
		AssignedTo:  assignedTo,
		LastUpdated: now,
	}
	if err := alert.Validate(); err != nil {
		return nil, err
	}
	if err := s.alerts.Save(ctx, alert); err != nil {
		s.logger.Error(ctx, "failed to save alert", err, logger.Fields{"customer_id": req.CustomerID})
		return nil, err
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionCreateAlert, constants.AuditResultSuccess,
		fmt.Sprintf("created %s alert (%s)", alert.Type, alert.Severity)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("alert", alert.ID).
		WithMetadata(map[string]interface{}{
			"type":     alert.Type,
			"severity": alert.Severity,
		}))
	s.logger.Info(ctx, "alert created", logger.Fields{
		"alert_id":    alert.ID,
		"customer_id": alert.CustomerID,
		"type":        alert.Type,
		"severity":    alert.Severity,
	})

	return dto.NewAlertResponse(alert), nil
}

func (s *alertAppService) Get(ctx context.Context, id string) (*dto.AlertResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceAlert, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionUpdateAlert, id)
		return nil, errors.ErrForbidden("role cannot view alerts")
	}

	alert, err := s.findAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewAlertResponse(alert), nil
}

func (s *alertAppService) List(ctx context.Context, req *dto.AlertListRequest) (*dto.ListResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceAlert, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionUpdateAlert, "")
		return nil, errors.ErrForbidden("role cannot view alerts")
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	filter := repository.AlertFilter{
		CustomerID: req.CustomerID,
		Status:     constants.AlertStatus(req.Status),
		Severity:   constants.AlertSeverity(req.Severity),
		Type:       constants.AlertType(req.Type),
		AssignedTo: req.AssignedTo,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}

	alerts, err := s.alerts.FindAll(ctx, filter)
	if err != nil {
		return nil, errors.ErrInternal("alert listing failed", err)
	}
	return dto.NewListResponse(dto.NewAlertResponses(alerts), page, pageSize, int64(len(alerts))), nil
}

func (s *alertAppService) StartInvestigation(ctx context.Context, id string, req *dto.AlertAssignRequest) (*dto.AlertResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceAlert, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionUpdateAlert, id)
		return nil, errors.ErrForbidden("role cannot update alerts")
	}

	alert, err := s.findAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := alert.StartInvestigation(req.AssignedTo, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.alerts.Update(ctx, alert); err != nil {
		s.logger.Error(ctx, "failed to update alert", err, logger.Fields{"alert_id": id})
		return nil, err
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionUpdateAlert, constants.AuditResultSuccess,
		fmt.Sprintf("started investigation, assigned to %s", req.AssignedTo)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("alert", id))

	return dto.NewAlertResponse(alert), nil
}

func (s *alertAppService) Close(ctx context.Context, id string, req *dto.AlertCloseRequest) (*dto.AlertResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceAlert, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionUpdateAlert, id)
		return nil, errors.ErrForbidden("role cannot update alerts")
	}

	alert, err := s.findAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := alert.Close(req.ResponseNote, now); err != nil {
		return nil, err
	}
	if err := s.alerts.Update(ctx, alert); err != nil {
		s.logger.Error(ctx, "failed to close alert", err, logger.Fields{"alert_id": id})
		return nil, err
	}

	// The resolution note goes onto the customer's case history too.
	if customer, err := s.customers.FindByID(ctx, alert.CustomerID); err == nil && customer != nil {
		customer.AppendNote(now, fmt.Sprintf("Alert %s closed: %s", alert.Type, req.ResponseNote))
		customer.LastUpdated = now
		if err := s.customers.Update(ctx, customer); err != nil {
			s.logger.Warn(ctx, "failed to append close note to customer", logger.Fields{
				"alert_id":    id,
				"customer_id": alert.CustomerID,
			})
		} else {
			s.cache.Set(customer)
		}
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionUpdateAlert, constants.AuditResultSuccess, "closed alert").
		WithActor(actor.UserID, actor.Role).
		WithEntity("alert", id))

	return dto.NewAlertResponse(alert), nil
}

func (s *alertAppService) Escalate(ctx context.Context, id string) (*dto.AlertResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceAlert, access.PermissionApprove) {
		s.denied(ctx, actor, constants.ActionEscalateAlert, id)
		return nil, errors.ErrForbidden("role cannot escalate alerts")
	}

	alert, err := s.findAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status == constants.AlertStatusClosed {
		return nil, errors.ErrConflict("cannot escalate a closed alert")
	}

	alert.Escalate(time.Now().UTC())
	if err := s.alerts.Update(ctx, alert); err != nil {
		s.logger.Error(ctx, "failed to escalate alert", err, logger.Fields{"alert_id": id})
		return nil, err
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionEscalateAlert, constants.AuditResultSuccess,
		"escalated alert to compliance team").
		WithActor(actor.UserID, actor.Role).
		WithEntity("alert", id))

	return dto.NewAlertResponse(alert), nil
}

func (s *alertAppService) findAlert(ctx context.Context, id string) (*models.Alert, error) {
	alert, err := s.alerts.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal("alert lookup failed", err)
	}
	if alert == nil {
		return nil, errors.ErrNotFound("alert", id)
	}
	return alert, nil
}

func (s *alertAppService) denied(ctx context.Context, actor Actor, action constants.AuditAction, alertID string) {
	s.audit.Record(ctx, models.NewAuditLog(constants.ActionAccessDenied, constants.AuditResultFailure,
		fmt.Sprintf("denied %s for role %q", action, actor.Role)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("alert", alertID).
		WithResultCode(constants.ErrCodeForbidden))
}
