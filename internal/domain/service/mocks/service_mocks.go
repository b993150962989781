// Package mocks provides testify mocks for the domain service seams.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/service"
)

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry *models.AuditLog) {
	m.Called(ctx, entry)
}

type MockLoginThrottle struct {
	mock.Mock
}

func (m *MockLoginThrottle) RegisterFailure(ctx context.Context, username string) (int, error) {
	args := m.Called(ctx, username)
	return args.Int(0), args.Error(1)
}

func (m *MockLoginThrottle) IsLocked(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginThrottle) Reset(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Issue(user *models.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenManager) Verify(token string) (*service.SessionClaims, error) {
	args := m.Called(token)
	var claims *service.SessionClaims
	if args.Get(0) != nil {
		claims = args.Get(0).(*service.SessionClaims)
	}
	return claims, args.Error(1)
}
