// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	var customer *models.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*models.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) FindByNIK(ctx context.Context, nik string) (*models.Customer, error) {
	args := m.Called(ctx, nik)
	var customer *models.Customer
	if args.Get(0) != nil {
		customer = args.Get(0).(*models.Customer)
	}
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter repository.CustomerFilter) ([]*models.Customer, error) {
	args := m.Called(ctx, filter)
	var customers []*models.Customer
	if args.Get(0) != nil {
		customers = args.Get(0).([]*models.Customer)
	}
	return customers, args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter repository.CustomerFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Archive(ctx context.Context, archived *models.ArchivedCustomer) error {
	args := m.Called(ctx, archived)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindArchived(ctx context.Context, limit, offset int) ([]*models.ArchivedCustomer, error) {
	args := m.Called(ctx, limit, offset)
	var archived []*models.ArchivedCustomer
	if args.Get(0) != nil {
		archived = args.Get(0).([]*models.ArchivedCustomer)
	}
	return archived, args.Error(1)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) FindByID(ctx context.Context, id string) (*models.Alert, error) {
	args := m.Called(ctx, id)
	var alert *models.Alert
	if args.Get(0) != nil {
		alert = args.Get(0).(*models.Alert)
	}
	return alert, args.Error(1)
}

func (m *MockAlertRepository) FindAll(ctx context.Context, filter repository.AlertFilter) ([]*models.Alert, error) {
	args := m.Called(ctx, filter)
	var alerts []*models.Alert
	if args.Get(0) != nil {
		alerts = args.Get(0).([]*models.Alert)
	}
	return alerts, args.Error(1)
}

func (m *MockAlertRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertRepository) CountOpen(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertRepository) Save(ctx context.Context, alert *models.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) Update(ctx context.Context, alert *models.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	var txn *models.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*models.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter repository.TransactionFilter) ([]*models.Transaction, error) {
	args := m.Called(ctx, filter)
	var txns []*models.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]*models.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) CountCashDepositsSince(ctx context.Context, customerID string, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, customerID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, txn *models.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []*models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*models.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Save(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindAll(ctx context.Context, filter repository.AuditFilter) ([]*models.AuditLog, error) {
	args := m.Called(ctx, filter)
	var entries []*models.AuditLog
	if args.Get(0) != nil {
		entries = args.Get(0).([]*models.AuditLog)
	}
	return entries, args.Error(1)
}

func (m *MockAuditRepository) Count(ctx context.Context, filter repository.AuditFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
