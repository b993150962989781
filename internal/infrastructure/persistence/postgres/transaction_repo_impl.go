package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/logger"
)

type transactionDBM struct {
	ID          string    `gorm:"primaryKey;size:64"`
	CustomerID  string    `gorm:"size:64;not null;index"`
	Date        time.Time `gorm:"index"`
	Type        string    `gorm:"size:32;index"`
	Amount      float64
	Description string `gorm:"size:512"`
	Destination string `gorm:"size:256"`
	Flagged     bool   `gorm:"index"`
	FlagReason  string `gorm:"size:512"`
	RecordedBy  string `gorm:"size:128"`
	CreatedAt   time.Time
}

func (transactionDBM) TableName() string { return "transactions" }

func (m *transactionDBM) toDomain() *models.Transaction {
	return &models.Transaction{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		Date:        m.Date,
		Type:        constants.TransactionType(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		Destination: m.Destination,
		Flagged:     m.Flagged,
		FlagReason:  m.FlagReason,
		RecordedBy:  m.RecordedBy,
		CreatedAt:   m.CreatedAt,
	}
}

func transactionFromDomain(t *models.Transaction) *transactionDBM {
	return &transactionDBM{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		Date:        t.Date,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		Destination: t.Destination,
		Flagged:     t.Flagged,
		FlagReason:  t.FlagReason,
		RecordedBy:  t.RecordedBy,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionRepoImpl implements TransactionRepository on GORM.
type TransactionRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewTransactionRepository creates the PostgreSQL transaction repository.
func NewTransactionRepository(db *gorm.DB, log logger.Logger) repository.TransactionRepository {
	return &TransactionRepoImpl{
		db:     db,
		logger: log.WithComponent("transaction_repo"),
	}
}

func (r *TransactionRepoImpl) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	var dbm transactionDBM
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error(ctx, "failed to query transaction", err, logger.Fields{"transaction_id": id})
		return nil, err
	}
	return dbm.toDomain(), nil
}

func (r *TransactionRepoImpl) FindAll(ctx context.Context, filter repository.TransactionFilter) ([]*models.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&transactionDBM{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", string(filter.Type))
	}
	if filter.FlaggedOnly {
		q = q.Where("flagged = ?", true)
	}
	if !filter.From.IsZero() {
		q = q.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("date <= ?", filter.To)
	}

	var dbms []transactionDBM
	err := q.Order("date DESC").
		Limit(limitOrDefault(filter.Limit)).
		Offset(filter.Offset).
		Find(&dbms).Error
	if err != nil {
		r.logger.Error(ctx, "failed to list transactions", err)
		return nil, err
	}

	txns := make([]*models.Transaction, 0, len(dbms))
	for i := range dbms {
		txns = append(txns, dbms[i].toDomain())
	}
	return txns, nil
}

func (r *TransactionRepoImpl) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&transactionDBM{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func (r *TransactionRepoImpl) CountCashDepositsSince(ctx context.Context, customerID string, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&transactionDBM{}).
		Where("customer_id = ? AND type = ? AND date >= ?",
			customerID, string(constants.TransactionCashDeposit), cutoff).
		Count(&count).Error
	return count, err
}

func (r *TransactionRepoImpl) Save(ctx context.Context, txn *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(transactionFromDomain(txn)).Error; err != nil {
		r.logger.Error(ctx, "failed to save transaction", err, logger.Fields{"transaction_id": txn.ID})
		return err
	}
	return nil
}

func (r *TransactionRepoImpl) Update(ctx context.Context, txn *models.Transaction) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", txn.ID).
		Save(transactionFromDomain(txn))
	if result.Error != nil {
		r.logger.Error(ctx, "failed to update transaction", result.Error, logger.Fields{"transaction_id": txn.ID})
		return result.Error
	}
	return nil
}
