package service

import (
	"context"
	"encoding/json"
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

// CustomerCache is the read cache seam for customer lookups.
type CustomerCache interface {
	Get(id string) (*models.Customer, bool)
	Set(customer *models.Customer)
	Invalidate(id string)
}

// CustomerAppService implements the customer management use cases.
type CustomerAppService interface {
	// Register creates a new customer and runs the initial risk assessment.
	Register(ctx context.Context, req *dto.CustomerCreateRequest) (*dto.CustomerResponse, error)

	// Get retrieves a single customer.
	Get(ctx context.Context, id string) (*dto.CustomerResponse, error)

	// List retrieves customers matching the filter.
	List(ctx context.Context, req *dto.CustomerListRequest) (*dto.ListResponse, error)

	// Update modifies a customer and re-assesses risk when any scoring input
	// changed.
	Update(ctx context.Context, id string, req *dto.CustomerUpdateRequest) (*dto.CustomerResponse, error)

	// Delete removes a customer with no case history, or archives one that
	// has related alerts or transactions.
	Delete(ctx context.Context, id, reason string) (*dto.DeleteResult, error)

	// ListArchived retrieves archived customers.
	ListArchived(ctx context.Context, page, pageSize int) (*dto.ListResponse, error)
}

type customerAppService struct {
	customers repository.CustomerRepository
	alerts    repository.AlertRepository
	txns      repository.TransactionRepository
	cache     CustomerCache
	audit     domainservice.AuditService
	logger    logger.Logger
}

// NewCustomerAppService creates the customer application service.
func NewCustomerAppService(
	customers repository.CustomerRepository,
	alerts repository.AlertRepository,
	txns repository.TransactionRepository,
	cache CustomerCache,
	audit domainservice.AuditService,
	log logger.Logger,
) CustomerAppService {
	return &customerAppService{
		customers: customers,
		alerts:    alerts,
		txns:      txns,
		cache:     cache,
		audit:     audit,
		logger:    log.WithComponent("customer_app_service"),
	}
}

func (s *customerAppService) Register(ctx context.Context, req *dto.CustomerCreateRequest) (*dto.CustomerResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceCustomer, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionAddCustomer, "customer", "")
		return nil, errors.ErrForbidden("role cannot create customers")
	}

	existing, err := s.customers.FindByNIK(ctx, req.NIK)
	if err != nil {
		return nil, errors.ErrInternal("customer lookup failed", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("customer with NIK %s already exists", req.NIK))
	}

	now := time.Now().UTC()
	customer := &models.Customer{
		ID:                 uuid.New().String(),
		FullName:           req.FullName,
		NIK:                req.NIK,
		DateOfBirth:        req.DateOfBirth,
		Address:            req.Address,
		Occupation:         req.Occupation,
		IncomeLevel:        constants.IncomeLevel(req.IncomeLevel),
		PEPStatus:          req.PEPStatus,
		SuspiciousActivity: req.SuspiciousActivity,
		TransactionProfile: req.TransactionProfile,
		VerificationStatus: constants.VerificationUnderReview,
		Documents:          req.Documents,
		Notes:              req.Notes,
		RegistrationDate:   now,
		LastUpdated:        now,
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	// Every customer gets an initial risk assessment at registration.
	customer.ApplyAssessment(risk.Assess(customer.RiskProfile()))

	if err := s.customers.Save(ctx, customer); err != nil {
		s.logger.Error(ctx, "failed to save customer", err, logger.Fields{"nik": req.NIK})
		return nil, err
	}
	s.cache.Set(customer)

	s.record(ctx, actor, constants.ActionAddCustomer, "customer", customer.ID,
		fmt.Sprintf("registered customer %s", customer.FullName))
	s.logger.Info(ctx, "customer registered", logger.Fields{
		"customer_id":   customer.ID,
		"risk_category": customer.RiskCategory,
	})

	return dto.NewCustomerResponse(customer), nil
}

func (s *customerAppService) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceCustomer, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionViewCustomer, "customer", id)
		return nil, errors.ErrForbidden("role cannot view customers")
	}

	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, constants.ActionViewCustomer, "customer", id, "viewed customer record")
	return dto.NewCustomerResponse(customer), nil
}

func (s *customerAppService) List(ctx context.Context, req *dto.CustomerListRequest) (*dto.ListResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceCustomer, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionViewCustomer, "customer", "")
		return nil, errors.ErrForbidden("role cannot view customers")
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	filter := repository.CustomerFilter{
		RiskCategory:       constants.RiskCategory(req.RiskCategory),
		VerificationStatus: constants.VerificationStatus(req.VerificationStatus),
		Search:             req.Search,
		Limit:              pageSize,
		Offset:             (page - 1) * pageSize,
	}

	customers, err := s.customers.FindAll(ctx, filter)
	if err != nil {
		return nil, errors.ErrInternal("customer listing failed", err)
	}
	total, err := s.customers.Count(ctx, filter)
	if err != nil {
		return nil, errors.ErrInternal("customer count failed", err)
	}

	return dto.NewListResponse(dto.NewCustomerResponses(customers), page, pageSize, total), nil
}

func (s *customerAppService) Update(ctx context.Context, id string, req *dto.CustomerUpdateRequest) (*dto.CustomerResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceCustomer, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionEditCustomer, "customer", id)
		return nil, errors.ErrForbidden("role cannot edit customers")
	}

	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	before := customer.RiskProfile()
	applyCustomerUpdate(customer, req)
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	// Re-score only when a risk input actually changed; a manual override
	// survives edits to non-risk fields.
	if customer.RiskProfile() != before {
		customer.ApplyAssessment(risk.Assess(customer.RiskProfile()))
	} else {
		customer.LastUpdated = time.Now().UTC()
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		s.logger.Error(ctx, "failed to update customer", err, logger.Fields{"customer_id": id})
		return nil, err
	}
	s.cache.Set(customer)

	s.record(ctx, actor, constants.ActionEditCustomer, "customer", id, "updated customer record")
	return dto.NewCustomerResponse(customer), nil
}

func (s *customerAppService) Delete(ctx context.Context, id, reason string) (*dto.DeleteResult, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceCustomer, access.PermissionDelete) {
		s.denied(ctx, actor, constants.ActionDeleteCustomer, "customer", id)
		return nil, errors.ErrForbidden("role cannot delete customers")
	}

	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	alertCount, err := s.alerts.CountByCustomer(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal("alert count failed", err)
	}
	txnCount, err := s.txns.CountByCustomer(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal("transaction count failed", err)
	}

	// A customer with case history is archived, not deleted: the alerts and
	// transactions keep a resolvable owner.
	if alertCount > 0 || txnCount > 0 {
		archived, err := buildArchive(customer, reason, time.Now().UTC())
		if err != nil {
			return nil, errors.ErrInternal("archive snapshot failed", err)
		}
		if err := s.customers.Archive(ctx, archived); err != nil {
			s.logger.Error(ctx, "failed to archive customer", err, logger.Fields{"customer_id": id})
			return nil, err
		}
		s.cache.Invalidate(id)

		s.record(ctx, actor, constants.ActionArchiveCustomer, "customer", id,
			fmt.Sprintf("archived customer with %d alerts, %d transactions", alertCount, txnCount))
		return &dto.DeleteResult{
			Archived: true,
			Reason:   fmt.Sprintf("customer has %d alerts and %d transactions", alertCount, txnCount),
		}, nil
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to delete customer", err, logger.Fields{"customer_id": id})
		return nil, err
	}
	s.cache.Invalidate(id)

	s.record(ctx, actor, constants.ActionDeleteCustomer, "customer", id, "deleted customer record")
	return &dto.DeleteResult{Deleted: true}, nil
}

func (s *customerAppService) ListArchived(ctx context.Context, page, pageSize int) (*dto.ListResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceCustomer, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionViewCustomer, "customer", "")
		return nil, errors.ErrForbidden("role cannot view customers")
	}

	page, pageSize = normalizePage(page, pageSize)
	archived, err := s.customers.FindArchived(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errors.ErrInternal("archive listing failed", err)
	}

	items := make([]*dto.ArchivedCustomerResponse, 0, len(archived))
	for _, a := range archived {
		items = append(items, dto.NewArchivedCustomerResponse(a))
	}
	return dto.NewListResponse(items, page, pageSize, int64(len(items))), nil
}

// findCustomer resolves a customer through the read cache.
func (s *customerAppService) findCustomer(ctx context.Context, id string) (*models.Customer, error) {
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

func (s *customerAppService) record(ctx context.Context, actor Actor, action constants.AuditAction, entityType, entityID, message string) {
	s.audit.Record(ctx, models.NewAuditLog(action, constants.AuditResultSuccess, message).
		WithActor(actor.UserID, actor.Role).
		WithEntity(entityType, entityID))
}

func (s *customerAppService) denied(ctx context.Context, actor Actor, action constants.AuditAction, entityType, entityID string) {
	s.audit.Record(ctx, models.NewAuditLog(constants.ActionAccessDenied, constants.AuditResultFailure,
		fmt.Sprintf("denied %s for role %q", action, actor.Role)).
		WithActor(actor.UserID, actor.Role).
		WithEntity(entityType, entityID).
		WithResultCode(constants.ErrCodeForbidden))
}

func applyCustomerUpdate(c *models.Customer, req *dto.CustomerUpdateRequest) {
	if req.FullName != nil {
		c.FullName = *req.FullName
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Occupation != nil {
		c.Occupation = *req.Occupation
	}
	if req.IncomeLevel != nil {
		c.IncomeLevel = constants.IncomeLevel(*req.IncomeLevel)
	}
	if req.PEPStatus != nil {
		c.PEPStatus = *req.PEPStatus
	}
	if req.SuspiciousActivity != nil {
		c.SuspiciousActivity = *req.SuspiciousActivity
	}
	if req.TransactionProfile != nil {
		c.TransactionProfile = *req.TransactionProfile
	}
	if req.VerificationStatus != nil {
		c.VerificationStatus = constants.VerificationStatus(*req.VerificationStatus)
	}
	if req.Documents != nil {
		c.Documents = *req.Documents
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
}

// buildArchive snapshots a customer for the archive table. The NIK gets a
// timestamp suffix so re-onboarding the same person does not collide with the
// uniqueness constraint.
func buildArchive(c *models.Customer, reason string, now time.Time) (*models.ArchivedCustomer, error) {
	snapshot, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = "deleted with related case records"
	}
	return &models.ArchivedCustomer{
		ID:            c.ID,
		FullName:      c.FullName,
		NIK:           fmt.Sprintf("%s_archived_%d", c.NIK, now.Unix()),
		ArchiveDate:   now,
		ArchiveReason: reason,
		Snapshot:      snapshot,
	}, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
