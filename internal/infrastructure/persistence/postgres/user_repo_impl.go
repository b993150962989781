package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
	apperrors "github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

type userDBM struct {
	ID           string `gorm:"primaryKey;size:64"`
	Username     string `gorm:"size:128;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:128;not null"`
	FullName     string `gorm:"size:256"`
	Role         string `gorm:"size:32;index"`
	Active       bool   `gorm:"index"`
	LastLoginAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userDBM) TableName() string { return "users" }

func (m *userDBM) toDomain() *models.User {
	return &models.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         m.Role,
		Active:       m.Active,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userFromDomain(u *models.User) *userDBM {
	return &userDBM{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Role:         u.Role,
		Active:       u.Active,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UserRepoImpl implements UserRepository on GORM.
type UserRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewUserRepository creates the PostgreSQL user repository.
func NewUserRepository(db *gorm.DB, log logger.Logger) repository.UserRepository {
	return &UserRepoImpl{
		db:     db,
		logger: log.WithComponent("user_repo"),
	}
}

func (r *UserRepoImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	var dbm userDBM
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error(ctx, "failed to query user", err, logger.Fields{"user_id": id})
		return nil, err
	}
	return dbm.toDomain(), nil
}

func (r *UserRepoImpl) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var dbm userDBM
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&dbm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error(ctx, "failed to query user by username", err)
		return nil, err
	}
	return dbm.toDomain(), nil
}

func (r *UserRepoImpl) FindAll(ctx context.Context, limit, offset int) ([]*models.User, error) {
	var dbms []userDBM
	err := r.db.WithContext(ctx).
		Order("username ASC").
		Limit(limitOrDefault(limit)).
		Offset(offset).
		Find(&dbms).Error
	if err != nil {
		r.logger.Error(ctx, "failed to list users", err)
		return nil, err
	}

	users := make([]*models.User, 0, len(dbms))
	for i := range dbms {
		users = append(users, dbms[i].toDomain())
	}
	return users, nil
}

func (r *UserRepoImpl) Save(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(userFromDomain(user)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict("username already taken")
		}
		r.logger.Error(ctx, "failed to save user", err, logger.Fields{"user_id": user.ID})
		return err
	}
	return nil
}

func (r *UserRepoImpl) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", user.ID).
		Save(userFromDomain(user))
	if result.Error != nil {
		r.logger.Error(ctx, "failed to update user", result.Error, logger.Fields{"user_id": user.ID})
		return result.Error
	}
	return nil
}
