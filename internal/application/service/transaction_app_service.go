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
	"github.com/openkyc/kyc/pkg/utils"
)

// TransactionAppService implements transaction logging and monitoring.
type TransactionAppService interface {
	// Record logs a transaction and runs the cash deposit pattern detector.
	Record(ctx context.Context, req *dto.TransactionCreateRequest) (*dto.TransactionResponse, error)

	// Get retrieves a single transaction.
	Get(ctx context.Context, id string) (*dto.TransactionResponse, error)

	// List retrieves transactions matching the filter.
	List(ctx context.Context, req *dto.TransactionListRequest) (*dto.ListResponse, error)

	// Flag marks a transaction as suspicious, flips the customer's
	// suspicious-activity flag, and raises a Suspicious Transaction alert.
	Flag(ctx context.Context, id string, req *dto.TransactionFlagRequest) (*dto.TransactionResponse, error)
}

type transactionAppService struct {
	txns      repository.TransactionRepository
	customers repository.CustomerRepository
	alerts    repository.AlertRepository
	cache     CustomerCache
	audit     domainservice.AuditService
	logger    logger.Logger
}

// NewTransactionAppService creates the transaction application service.
func NewTransactionAppService(
	txns repository.TransactionRepository,
	customers repository.CustomerRepository,
	alerts repository.AlertRepository,
	cache CustomerCache,
	audit domainservice.AuditService,
	log logger.Logger,
) TransactionAppService {
	return &transactionAppService{
		txns:      txns,
		customers: customers,
		alerts:    alerts,
		cache:     cache,
		audit:     audit,
		logger:    log.WithComponent("transaction_app_service"),
	}
}

func (s *transactionAppService) Record(ctx context.Context, req *dto.TransactionCreateRequest) (*dto.TransactionResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceTransaction, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionAddTransaction, "")
		return nil, errors.ErrForbidden("role cannot record transactions")
	}

	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, errors.ErrInternal("customer lookup failed", err)
	}
	if customer == nil {
		return nil, errors.ErrNotFound("customer", req.CustomerID)
	}

	now := time.Now().UTC()
	date := now
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, errors.ErrInvalidRequest("date must be YYYY-MM-DD")
		}
		date = parsed
	}

	txn := &models.Transaction{
		ID:          uuid.New().String(),
		CustomerID:  req.CustomerID,
		Date:        date,
		Type:        constants.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Destination: req.Destination,
		RecordedBy:  actor.Username,
		CreatedAt:   now,
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	if err := s.txns.Save(ctx, txn); err != nil {
		s.logger.Error(ctx, "failed to save transaction", err, logger.Fields{"customer_id": req.CustomerID})
		return nil, err
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionAddTransaction, constants.AuditResultSuccess,
		fmt.Sprintf("recorded %s of %s", txn.Type, utils.FormatIDR(txn.Amount))).
		WithActor(actor.UserID, actor.Role).
		WithEntity("transaction", txn.ID))

	if txn.IsCashDeposit() {
		s.detectStructuring(ctx, customer, txn)
	}

	return dto.NewTransactionResponse(txn), nil
}

func (s *transactionAppService) Get(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceTransaction, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionAddTransaction, id)
		return nil, errors.ErrForbidden("role cannot view transactions")
	}

	txn, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewTransactionResponse(txn), nil
}

func (s *transactionAppService) List(ctx context.Context, req *dto.TransactionListRequest) (*dto.ListResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceTransaction, access.PermissionRead) {
		s.denied(ctx, actor, constants.ActionAddTransaction, "")
		return nil, errors.ErrForbidden("role cannot view transactions")
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	filter := repository.TransactionFilter{
		CustomerID:  req.CustomerID,
		Type:        constants.TransactionType(req.Type),
		FlaggedOnly: req.FlaggedOnly,
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	}
	if req.From != "" {
		if t, err := time.Parse("2006-01-02", req.From); err == nil {
			filter.From = t
		}
	}
	if req.To != "" {
		if t, err := time.Parse("2006-01-02", req.To); err == nil {
			filter.To = t
		}
	}

	txns, err := s.txns.FindAll(ctx, filter)
	if err != nil {
		return nil, errors.ErrInternal("transaction listing failed", err)
	}
	return dto.NewListResponse(dto.NewTransactionResponses(txns), page, pageSize, int64(len(txns))), nil
}

func (s *transactionAppService) Flag(ctx context.Context, id string, req *dto.TransactionFlagRequest) (*dto.TransactionResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceTransaction, access.PermissionWrite) {
		s.denied(ctx, actor, constants.ActionFlagTransaction, id)
		return nil, errors.ErrForbidden("role cannot flag transactions")
	}

	txn, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn.Flagged {
		return nil, errors.ErrConflict("transaction is already flagged")
	}
	if err := txn.Flag(req.Reason); err != nil {
		return nil, err
	}
	if err := s.txns.Update(ctx, txn); err != nil {
		s.logger.Error(ctx, "failed to flag transaction", err, logger.Fields{"transaction_id": id})
		return nil, err
	}

	// A flagged transaction marks the customer and opens an alert for review.
	now := time.Now().UTC()
	if customer, err := s.customers.FindByID(ctx, txn.CustomerID); err == nil && customer != nil {
		if !customer.SuspiciousActivity {
			customer.SuspiciousActivity = true
			customer.LastUpdated = now
			if err := s.customers.Update(ctx, customer); err != nil {
				s.logger.Warn(ctx, "failed to mark customer suspicious", logger.Fields{"customer_id": customer.ID})
			} else {
				s.cache.Set(customer)
			}
		}
	}

	alert := &models.Alert{
		ID:          uuid.New().String(),
		CustomerID:  txn.CustomerID,
		Date:        now,
		Type:        constants.AlertTypeSuspiciousTransaction,
		Description: fmt.Sprintf("Transaction %s flagged: %s", txn.ID, req.Reason),
		Status:      constants.AlertStatusOpen,
		Severity:    constants.SeverityHigh,
		AssignedTo:  actor.Username,
		LastUpdated: now,
	}
	if alert.AssignedTo == "" {
		alert.AssignedTo = "Compliance Team"
	}
	if err := s.alerts.Save(ctx, alert); err != nil {
		s.logger.Error(ctx, "failed to raise suspicious transaction alert", err, logger.Fields{"transaction_id": id})
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionFlagTransaction, constants.AuditResultSuccess,
		fmt.Sprintf("flagged transaction: %s", req.Reason)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("transaction", id))

	return dto.NewTransactionResponse(txn), nil
}

// detectStructuring raises a Suspicious Pattern alert when a customer makes
// repeated cash deposits inside the detection window. The recording itself
// never fails on detector errors.
func (s *transactionAppService) detectStructuring(ctx context.Context, customer *models.Customer, txn *models.Transaction) {
	cutoff := txn.Date.Add(-constants.StructuringWindow)
	count, err := s.txns.CountCashDepositsSince(ctx, customer.ID, cutoff)
	if err != nil {
		s.logger.Error(ctx, "cash deposit pattern check failed", err, logger.Fields{"customer_id": customer.ID})
		return
	}
	if count < constants.StructuringDepositThreshold {
		return
	}

	now := time.Now().UTC()
	alert := &models.Alert{
		ID:          uuid.New().String(),
		CustomerID:  customer.ID,
		Date:        now,
		Type:        constants.AlertTypeSuspiciousPattern,
		Description: fmt.Sprintf("%d cash deposits within 7 days, possible structuring", count),
		Status:      constants.AlertStatusOpen,
		Severity:    constants.SeverityHigh,
		AssignedTo:  "Compliance Team",
		LastUpdated: now,
	}
	if err := s.alerts.Save(ctx, alert); err != nil {
		s.logger.Error(ctx, "failed to raise structuring alert", err, logger.Fields{"customer_id": customer.ID})
		return
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionCreateAlert, constants.AuditResultSuccess,
		fmt.Sprintf("raised %s alert: %s", alert.Type, alert.Description)).
		WithActor("system", "").
		WithEntity("alert", alert.ID).
		WithMetadata(map[string]interface{}{
			"type":     alert.Type,
			"severity": alert.Severity,
			"deposits": count,
		}))
	s.logger.Warn(ctx, "cash deposit pattern detected", logger.Fields{
		"customer_id": customer.ID,
		"deposits":    count,
	})
}

func (s *transactionAppService) findTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	txn, err := s.txns.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal("transaction lookup failed", err)
	}
	if txn == nil {
		return nil, errors.ErrNotFound("transaction", id)
	}
	return txn, nil
}

func (s *transactionAppService) denied(ctx context.Context, actor Actor, action constants.AuditAction, txnID string) {
	s.audit.Record(ctx, models.NewAuditLog(constants.ActionAccessDenied, constants.AuditResultFailure,
		fmt.Sprintf("denied %s for role %q", action, actor.Role)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("transaction", txnID).
		WithResultCode(constants.ErrCodeForbidden))
}
