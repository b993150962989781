package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
	"github.com/openkyc/kyc/pkg/constants"
	apperrors "github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

// customerDBM is the database mapping for customers. Documents are stored as
// a JSON array in a text column.
type customerDBM struct {
	ID                 string    `gorm:"primaryKey;size:64"`
	FullName           string    `gorm:"size:256;not null;index"`
	NIK                string    `gorm:"size:64;not null;uniqueIndex"`
	DateOfBirth        string    `gorm:"size:16"`
	Address            string    `gorm:"size:512"`
	Occupation         string    `gorm:"size:128"`
	IncomeLevel        string    `gorm:"size:16"`
	PEPStatus          bool      `gorm:"column:pep_status"`
	SuspiciousActivity bool
	TransactionProfile string  `gorm:"size:512"`
	RiskScore          float64 `gorm:"index"`
	RiskCategory       string  `gorm:"size:16;index"`
	RiskOverridden     bool
	VerificationStatus string    `gorm:"size:32;index"`
	Documents          string    `gorm:"type:text"`
	Notes              string    `gorm:"type:text"`
	RegistrationDate   time.Time `gorm:"index"`
	LastUpdated        time.Time
}

func (customerDBM) TableName() string { return "customers" }

type archivedCustomerDBM struct {
	ID            string    `gorm:"primaryKey;size:64"`
	FullName      string    `gorm:"size:256"`
	NIK           string    `gorm:"size:96;uniqueIndex"`
	ArchiveDate   time.Time `gorm:"index"`
	ArchiveReason string    `gorm:"size:512"`
	Snapshot      []byte    `gorm:"type:bytea"`
}

func (archivedCustomerDBM) TableName() string { return "archived_customers" }

func (m *customerDBM) toDomain() *models.Customer {
	var documents []string
	if m.Documents != "" {
		_ = json.Unmarshal([]byte(m.Documents), &documents)
	}
	return &models.Customer{
		ID:                 m.ID,
		FullName:           m.FullName,
		NIK:                m.NIK,
		DateOfBirth:        m.DateOfBirth,
		Address:            m.Address,
		Occupation:         m.Occupation,
		IncomeLevel:        constants.IncomeLevel(m.IncomeLevel),
		PEPStatus:          m.PEPStatus,
		SuspiciousActivity: m.SuspiciousActivity,
		TransactionProfile: m.TransactionProfile,
		RiskScore:          m.RiskScore,
		RiskCategory:       constants.RiskCategory(m.RiskCategory),
		RiskOverridden:     m.RiskOverridden,
		VerificationStatus: constants.VerificationStatus(m.VerificationStatus),
		Documents:          documents,
		Notes:              m.Notes,
		RegistrationDate:   m.RegistrationDate,
		LastUpdated:        m.LastUpdated,
	}
}

func customerFromDomain(c *models.Customer) *customerDBM {
	documents := ""
	if len(c.Documents) > 0 {
		if raw, err := json.Marshal(c.Documents); err == nil {
			documents = string(raw)
		}
	}
	return &customerDBM{
		ID:                 c.ID,
		FullName:           c.FullName,
		NIK:                c.NIK,
		DateOfBirth:        c.DateOfBirth,
		Address:            c.Address,
		Occupation:         c.Occupation,
		IncomeLevel:        string(c.IncomeLevel),
		PEPStatus:          c.PEPStatus,
		SuspiciousActivity: c.SuspiciousActivity,
		TransactionProfile: c.TransactionProfile,
		RiskScore:          c.RiskScore,
		RiskCategory:       string(c.RiskCategory),
		RiskOverridden:     c.RiskOverridden,
		VerificationStatus: string(c.VerificationStatus),
		Documents:          documents,
		Notes:              c.Notes,
		RegistrationDate:   c.RegistrationDate,
		LastUpdated:        c.LastUpdated,
	}
}

// CustomerRepoImpl implements CustomerRepository on GORM.
type CustomerRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewCustomerRepository creates the PostgreSQL customer repository.
func NewCustomerRepository(db *gorm.DB, log logger.Logger) repository.CustomerRepository {
	return &CustomerRepoImpl{
		db:     db,
		logger: log.WithComponent("customer_repo"),
	}
}

func (r *CustomerRepoImpl) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	var dbm customerDBM
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error(ctx, "failed to query customer", err, logger.Fields{"customer_id": id})
		return nil, err
	}
	return dbm.toDomain(), nil
}

func (r *CustomerRepoImpl) FindByNIK(ctx context.Context, nik string) (*models.Customer, error) {
	var dbm customerDBM
	err := r.db.WithContext(ctx).Where("nik = ?", nik).First(&dbm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error(ctx, "failed to query customer by NIK", err)
		return nil, err
	}
	return dbm.toDomain(), nil
}

func (r *CustomerRepoImpl) FindAll(ctx context.Context, filter repository.CustomerFilter) ([]*models.Customer, error) {
	var dbms []customerDBM
	err := r.filtered(ctx, filter).
		Order("registration_date DESC").
		Limit(limitOrDefault(filter.Limit)).
		Offset(filter.Offset).
		Find(&dbms).Error
	if err != nil {
		r.logger.Error(ctx, "failed to list customers", err)
		return nil, err
	}

	customers := make([]*models.Customer, 0, len(dbms))
	for i := range dbms {
		customers = append(customers, dbms[i].toDomain())
	}
	return customers, nil
}

func (r *CustomerRepoImpl) Count(ctx context.Context, filter repository.CustomerFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	if err != nil {
		r.logger.Error(ctx, "failed to count customers", err)
		return 0, err
	}
	return count, nil
}

func (r *CustomerRepoImpl) Save(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customerFromDomain(customer)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict("customer NIK already registered")
		}
		r.logger.Error(ctx, "failed to save customer", err, logger.Fields{"customer_id": customer.ID})
		return err
	}
	return nil
}

func (r *CustomerRepoImpl) Update(ctx context.Context, customer *models.Customer) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", customer.ID).
		Save(customerFromDomain(customer))
	if result.Error != nil {
		r.logger.Error(ctx, "failed to update customer", result.Error, logger.Fields{"customer_id": customer.ID})
		return result.Error
	}
	return nil
}

func (r *CustomerRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&customerDBM{})
	if result.Error != nil {
		r.logger.Error(ctx, "failed to delete customer", result.Error, logger.Fields{"customer_id": id})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound("customer", id)
	}
	return nil
}

// Archive moves a customer into the archive table inside one transaction.
func (r *CustomerRepoImpl) Archive(ctx context.Context, archived *models.ArchivedCustomer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archivedCustomerDBM{
			ID:            archived.ID,
			FullName:      archived.FullName,
			NIK:           archived.NIK,
			ArchiveDate:   archived.ArchiveDate,
			ArchiveReason: archived.ArchiveReason,
			Snapshot:      archived.Snapshot,
		}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", archived.ID).Delete(&customerDBM{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound("customer", archived.ID)
		}
		return nil
	})
}

func (r *CustomerRepoImpl) FindArchived(ctx context.Context, limit, offset int) ([]*models.ArchivedCustomer, error) {
	var dbms []archivedCustomerDBM
	err := r.db.WithContext(ctx).
		Order("archive_date DESC").
		Limit(limitOrDefault(limit)).
		Offset(offset).
		Find(&dbms).Error
	if err != nil {
		r.logger.Error(ctx, "failed to list archived customers", err)
		return nil, err
	}

	archived := make([]*models.ArchivedCustomer, 0, len(dbms))
	for i := range dbms {
		archived = append(archived, &models.ArchivedCustomer{
			ID:            dbms[i].ID,
			FullName:      dbms[i].FullName,
			NIK:           dbms[i].NIK,
			ArchiveDate:   dbms[i].ArchiveDate,
			ArchiveReason: dbms[i].ArchiveReason,
			Snapshot:      dbms[i].Snapshot,
		})
	}
	return archived, nil
}

func (r *CustomerRepoImpl) filtered(ctx context.Context, filter repository.CustomerFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&customerDBM{})
	if filter.RiskCategory != "" {
		q = q.Where("risk_category = ?", string(filter.RiskCategory))
	}
	if filter.VerificationStatus != "" {
		q = q.Where("verification_status = ?", string(filter.VerificationStatus))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("full_name LIKE ? OR nik LIKE ?", pattern, pattern)
	}
	return q
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
