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

type alertDBM struct {
	ID          string    `gorm:"primaryKey;size:64"`
	CustomerID  string    `gorm:"size:64;not null;index"`
	Date        time.Time `gorm:"index"`
	Type        string    `gorm:"size:64;index"`
	Description string    `gorm:"size:1000"`
	Status      string    `gorm:"size:32;index"`
	Severity    string    `gorm:"size:16;index"`
	AssignedTo  string    `gorm:"size:128;index"`
	LastUpdated time.Time
}

func (alertDBM) TableName() string { return "alerts" }

func (m *alertDBM) toDomain() *models.Alert {
	return &models.Alert{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		Date:        m.Date,
		Type:        constants.AlertType(m.Type),
		Description: m.Description,
		Status:      constants.AlertStatus(m.Status),
		Severity:    constants.AlertSeverity(m.Severity),
		AssignedTo:  m.AssignedTo,
		LastUpdated: m.LastUpdated,
	}
}

func alertFromDomain(a *models.Alert) *alertDBM {
	return &alertDBM{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		Date:        a.Date,
		Type:        string(a.Type),
		Description: a.Description,
		Status:      string(a.Status),
		Severity:    string(a.Severity),
		AssignedTo:  a.AssignedTo,
		LastUpdated: a.LastUpdated,
	}
}

// AlertRepoImpl implements AlertRepository on GORM.
type AlertRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewAlertRepository creates the PostgreSQL alert repository.
func NewAlertRepository(db *gorm.DB, log logger.Logger) repository.AlertRepository {
	return &AlertRepoImpl{
		db:     db,
		logger: log.WithComponent("alert_repo"),
	}
}

func (r *AlertRepoImpl) FindByID(ctx context.Context, id string) (*models.Alert, error) {
	var dbm alertDBM
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error(ctx, "failed to query alert", err, logger.Fields{"alert_id": id})
		return nil, err
	}
	return dbm.toDomain(), nil
}

func (r *AlertRepoImpl) FindAll(ctx context.Context, filter repository.AlertFilter) ([]*models.Alert, error) {
	q := r.db.WithContext(ctx).Model(&alertDBM{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Severity != "" {
		q = q.Where("severity = ?", string(filter.Severity))
	}
	if filter.Type != "" {
		q = q.Where("type = ?", string(filter.Type))
	}
	if filter.AssignedTo != "" {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}

	var dbms []alertDBM
	err := q.Order("date DESC").
		Limit(limitOrDefault(filter.Limit)).
		Offset(filter.Offset).
		Find(&dbms).Error
	if err != nil {
		r.logger.Error(ctx, "failed to list alerts", err)
		return nil, err
	}

	alerts := make([]*models.Alert, 0, len(dbms))
	for i := range dbms {
		alerts = append(alerts, dbms[i].toDomain())
	}
	return alerts, nil
}

func (r *AlertRepoImpl) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&alertDBM{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func (r *AlertRepoImpl) CountOpen(ctx context.Context, customerID string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&alertDBM{}).
		Where("status <> ?", string(constants.AlertStatusClosed))
	if customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *AlertRepoImpl) Save(ctx context.Context, alert *models.Alert) error {
	if err := r.db.WithContext(ctx).Create(alertFromDomain(alert)).Error; err != nil {
		r.logger.Error(ctx, "failed to save alert", err, logger.Fields{"alert_id": alert.ID})
		return err
	}
	return nil
}

func (r *AlertRepoImpl) Update(ctx context.Context, alert *models.Alert) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", alert.ID).
		Save(alertFromDomain(alert))
	if result.Error != nil {
		r.logger.Error(ctx, "failed to update alert", result.Error, logger.Fields{"alert_id": alert.ID})
		return result.Error
	}
	return nil
}
