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
	"github.com/openkyc/kyc/internal/domain/risk"
	domainservice "github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

// RiskAppService implements the risk assessment use cases.
type RiskAppService interface {
	// Assess recomputes a customer's risk from their current attributes. An
	// escalation into the High band raises a Risk Escalation alert.
	Assess(ctx context.Context, customerID string) (*dto.RiskAssessmentResponse, error)

	// Explain returns the current score breakdown without re-persisting.
	Explain(ctx context.Context, customerID string) (*dto.RiskAssessmentResponse, error)

	// Override manually sets a customer's risk score. Requires approve
	// permission on the risk resource.
	Override(ctx context.Context, customerID string, req *dto.RiskOverrideRequest) (*dto.RiskAssessmentResponse, error)

	// RecordEDDAction logs an enhanced due diligence step as an alert and a
	// dated case note. Only valid for high-risk customers.
	RecordEDDAction(ctx context.Context, customerID string, req *dto.EDDActionRequest) (*dto.AlertResponse, error)
}

type riskAppService struct {
	customers repository.CustomerRepository
	alerts    repository.AlertRepository
	cache     CustomerCache
	audit     domainservice.AuditService
	logger    logger.Logger
}

// NewRiskAppService creates the risk application service.
func NewRiskAppService(
	customers repository.CustomerRepository,
	alerts repository.AlertRepository,
	cache CustomerCache,
	audit domainservice.AuditService,
	log logger.Logger,
) RiskAppService {
	return &riskAppService{
		customers: customers,
		alerts:    alerts,
		cache:     cache,
		audit:     audit,
		logger:    log.WithComponent("risk_app_service"),
	}
}

func (s *riskAppService) Assess(ctx context.Context, customerID string) (*dto.RiskAssessmentResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceRisk, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionRiskAssessment, customerID)
		return nil, errors.ErrForbidden("role cannot run risk assessments")
	}

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	previous := customer.RiskCategory
	profile := customer.RiskProfile()
	assessment := risk.Assess(profile)
	customer.ApplyAssessment(assessment)

	if err := s.customers.Update(ctx, customer); err != nil {
		s.logger.Error(ctx, "failed to persist risk assessment", err, logger.Fields{"customer_id": customerID})
		return nil, err
	}
	s.cache.Set(customer)

	alertRaised := false
	if assessment.Category == constants.RiskCategoryHigh && previous != constants.RiskCategoryHigh {
		alertRaised = s.raiseEscalationAlert(ctx, customer, assessment)
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionRiskAssessment, constants.AuditResultSuccess,
		fmt.Sprintf("assessed risk: %.2f (%s)", assessment.Score, assessment.Category)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("customer", customerID).
		WithMetadata(map[string]interface{}{
			"score":             assessment.Score,
			"category":          assessment.Category,
			"previous_category": previous,
		}))
	s.logger.Info(ctx, "risk assessment completed", logger.Fields{
		"customer_id": customerID,
		"score":       assessment.Score,
		"category":    assessment.Category,
	})

	return dto.NewRiskAssessmentResponse(customerID, assessment, risk.Factors(profile), risk.Explain(profile), alertRaised), nil
}

func (s *riskAppService) Explain(ctx context.Context, customerID string) (*dto.RiskAssessmentResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceRisk, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionRiskAssessment, customerID)
		return nil, errors.ErrForbidden("role cannot view risk assessments")
	}

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	profile := customer.RiskProfile()
	current := risk.Assessment{
		Score:      customer.RiskScore,
		Category:   customer.RiskCategory,
		AssessedAt: customer.LastUpdated,
		Overridden: customer.RiskOverridden,
	}
	return dto.NewRiskAssessmentResponse(customerID, current, risk.Factors(profile), risk.Explain(profile), false), nil
}

func (s *riskAppService) Override(ctx context.Context, customerID string, req *dto.RiskOverrideRequest) (*dto.RiskAssessmentResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceRisk, access.PermissionApprove) {
		s.denied(ctx, actor, constants.ActionRiskOverride, customerID)
		return nil, errors.ErrForbidden("role cannot override risk scores")
	}

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	previous := customer.RiskScore
	assessment := risk.OverrideAssessment(req.Score)
	customer.ApplyAssessment(assessment)
	customer.AppendNote(assessment.AssessedAt, fmt.Sprintf("Risk override %.2f -> %.2f: %s", previous, assessment.Score, req.Justification))

	if err := s.customers.Update(ctx, customer); err != nil {
		s.logger.Error(ctx, "failed to persist risk override", err, logger.Fields{"customer_id": customerID})
		return nil, err
	}
	s.cache.Set(customer)

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionRiskOverride, constants.AuditResultSuccess,
		fmt.Sprintf("overrode risk score %.2f -> %.2f", previous, assessment.Score)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("customer", customerID).
		WithMetadata(map[string]interface{}{
			"previous_score": previous,
			"new_score":      assessment.Score,
			"justification":  req.Justification,
		}))

	return dto.NewRiskAssessmentResponse(customerID, assessment, nil, nil, false), nil
}

func (s *riskAppService) RecordEDDAction(ctx context.Context, customerID string, req *dto.EDDActionRequest) (*dto.AlertResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceRisk, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionEDD, customerID)
		return nil, errors.ErrForbidden("role cannot record EDD actions")
	}

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.RiskCategory != constants.RiskCategoryHigh {
		return nil, errors.ErrInvalidRequest("EDD actions apply to high-risk customers only")
	}

	now := time.Now().UTC()
	description := req.Notes
	if description == "" {
		description = fmt.Sprintf("%s initiated for high-risk customer", req.Action)
	}
	alert := &models.Alert{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		Date:        now,
		Type:        constants.AlertType(req.Action),
		Description: description,
		Status:      eddInitialStatus(constants.AlertType(req.Action)),
		Severity:    constants.SeverityHigh,
		AssignedTo:  actor.Username,
		LastUpdated: now,
	}
	if alert.AssignedTo == "" {
		alert.AssignedTo = "Compliance Team"
	}
	if err := alert.Validate(); err != nil {
		return nil, err
	}
	if err := s.alerts.Save(ctx, alert); err != nil {
		s.logger.Error(ctx, "failed to save EDD alert", err, logger.Fields{"customer_id": customerID})
		return nil, err
	}

	customer.AppendNote(now, fmt.Sprintf("EDD: %s", req.Action))
	customer.LastUpdated = now
	if err := s.customers.Update(ctx, customer); err != nil {
		s.logger.Error(ctx, "failed to append EDD note", err, logger.Fields{"customer_id": customerID})
		return nil, err
	}
	s.cache.Set(customer)

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionEDD, constants.AuditResultSuccess,
		fmt.Sprintf("recorded EDD action %q", req.Action)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("customer", customerID))

	return dto.NewAlertResponse(alert), nil
}

// raiseEscalationAlert opens a Risk Escalation alert when a customer crosses
// into the High band. Alert failure is logged but does not fail the
// assessment that triggered it.
func (s *riskAppService) raiseEscalationAlert(ctx context.Context, customer *models.Customer, assessment risk.Assessment) bool {
	now := time.Now().UTC()
	alert := &models.Alert{
		ID:          uuid.New().String(),
		CustomerID:  customer.ID,
		Date:        now,
		Type:        constants.AlertTypeRiskEscalation,
		Description: fmt.Sprintf("Risk category escalated to High (score %.2f)", assessment.Score),
		Status:      constants.AlertStatusOpen,
		Severity:    constants.SeverityHigh,
		AssignedTo:  "Compliance Team",
		LastUpdated: now,
	}
	if err := s.alerts.Save(ctx, alert); err != nil {
		s.logger.Error(ctx, "failed to raise escalation alert", err, logger.Fields{"customer_id": customer.ID})
		return false
	}
	return true
}

func (s *riskAppService) findCustomer(ctx context.Context, id string) (*models.Customer, error) {
	if customer, ok := s.cache.Get(id); ok {
		return customer, nil
	}
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal("customer lookup failed", err)
	}
	if customer == nil {
		return nil, errors.ErrNotFound("customer", id)
	}
	s.cache.Set(customer)
	return customer, nil
}

func (s *riskAppService) denied(ctx context.Context, actor Actor, action constants.AuditAction, customerID string) {
	s.audit.Record(ctx, models.NewAuditLog(constants.ActionAccessDenied, constants.AuditResultFailure,
		fmt.Sprintf("denied %s for role %q", action, actor.Role)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("customer", customerID).
		WithResultCode(constants.ErrCodeForbidden))
}

// eddInitialStatus picks the lifecycle start for each EDD action type.
func eddInitialStatus(t constants.AlertType) constants.AlertStatus {
	switch t {
	case constants.AlertTypeEDDInterview:
		return constants.AlertStatusScheduled
	case constants.AlertTypeDocumentRequest:
		return constants.AlertStatusPending
	case constants.AlertTypeComplianceReferral:
		return constants.AlertStatusUnderReview
	default:
		return constants.AlertStatusOpen
	}
}
