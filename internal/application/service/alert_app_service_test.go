package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/domain/models"
	repomocks "github.com/openkyc/kyc/internal/domain/repository/mocks"
	svcmocks "github.com/openkyc/kyc/internal/domain/service/mocks"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

type alertFixture struct {
	alerts    *repomocks.MockAlertRepository
	customers *repomocks.MockCustomerRepository
	cache     *fakeCache
	audit     *svcmocks.MockAuditService
	svc       AlertAppService
}

func newAlertFixture() *alertFixture {
	f := &alertFixture{
		alerts:    new(repomocks.MockAlertRepository),
		customers: new(repomocks.MockCustomerRepository),
		cache:     newFakeCache(),
		audit:     new(svcmocks.MockAuditService),
	}
	f.audit.On("Record", mock.Anything, mock.Anything).Return()
	f.svc = NewAlertAppService(f.alerts, f.customers, f.cache, f.audit, logger.NewNoopLogger())
	return f
}

func openAlert() *models.Alert {
	return &models.Alert{
		ID:          "alr-1",
		CustomerID:  "cst-1",
		Date:        time.Now().UTC().Add(-time.Hour),
		Type:        constants.AlertTypeUnusualTransaction,
		Description: "Transfer inconsistent with declared profile",
		Status:      constants.AlertStatusOpen,
		Severity:    constants.SeverityMedium,
		AssignedTo:  "analyst1",
	}
}

func TestAlertCreate(t *testing.T) {
	f := newAlertFixture()
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(&models.Customer{ID: "cst-1"}, nil)
	f.alerts.On("Save", mock.Anything, mock.MatchedBy(func(a *models.Alert) bool {
		return a.CustomerID == "cst-1" && a.Status == constants.AlertStatusOpen
	})).Return(nil)

	resp, err := f.svc.Create(ctxAs("kyc_analyst"), &dto.AlertCreateRequest{
		CustomerID:  "cst-1",
		Type:        "Unusual Transaction",
		Description: "Large unexplained inbound transfer",
		Severity:    "High",
	})
	require.NoError(t, err)
	assert.Equal(t, "Open", resp.Status)
	// Unassigned alerts land on the creator.
	assert.Equal(t, "tester", resp.AssignedTo)
}

func TestAlertCreate_UnknownCustomer(t *testing.T) {
	f := newAlertFixture()
	f.customers.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := f.svc.Create(ctxAs("kyc_analyst"), &dto.AlertCreateRequest{
		CustomerID:  "ghost",
		Type:        "Other",
		Description: "x",
		Severity:    "Low",
	})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeNotFound, errors.CodeOf(err))
}

func TestAlertClose_WritesCustomerNote(t *testing.T) {
	f := newAlertFixture()
	alert := openAlert()
	customer := &models.Customer{ID: "cst-1", FullName: "Budi"}
	f.alerts.On("FindByID", mock.Anything, "alr-1").Return(alert, nil)
	f.alerts.On("Update", mock.Anything, alert).Return(nil)
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(customer, nil)
	f.customers.On("Update", mock.Anything, customer).Return(nil)

	resp, err := f.svc.Close(ctxAs("risk_officer"), "alr-1", &dto.AlertCloseRequest{
		ResponseNote: "Verified with customer, false positive",
	})
	require.NoError(t, err)
	assert.Equal(t, "Closed", resp.Status)
	assert.Contains(t, customer.Notes, "false positive")
}

func TestAlertClose_RequiresNote(t *testing.T) {
	f := newAlertFixture()
	alert := openAlert()
	f.alerts.On("FindByID", mock.Anything, "alr-1").Return(alert, nil)

	_, err := f.svc.Close(ctxAs("risk_officer"), "alr-1", &dto.AlertCloseRequest{})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeValidation, errors.CodeOf(err))
	f.alerts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAlertStartInvestigation(t *testing.T) {
	f := newAlertFixture()
	alert := openAlert()
	f.alerts.On("FindByID", mock.Anything, "alr-1").Return(alert, nil)
	f.alerts.On("Update", mock.Anything, alert).Return(nil)

	resp, err := f.svc.StartInvestigation(ctxAs("kyc_analyst"), "alr-1", &dto.AlertAssignRequest{
		AssignedTo: "analyst2",
	})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", resp.Status)
	assert.Equal(t, "analyst2", resp.AssignedTo)
}

func TestAlertEscalate_SupervisorApproves(t *testing.T) {
	f := newAlertFixture()
	alert := openAlert()
	f.alerts.On("FindByID", mock.Anything, "alr-1").Return(alert, nil)
	f.alerts.On("Update", mock.Anything, alert).Return(nil)

	resp, err := f.svc.Escalate(ctxAs("supervisor"), "alr-1")
	require.NoError(t, err)
	assert.Equal(t, "High", resp.Severity)
	assert.Equal(t, "Compliance Team", resp.AssignedTo)
}

func TestAlertEscalate_AnalystDenied(t *testing.T) {
	f := newAlertFixture()

	// kyc_analyst holds alert write but not approve.
	_, err := f.svc.Escalate(ctxAs("kyc_analyst"), "alr-1")
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeForbidden, errors.CodeOf(err))
}

func TestAlertEscalate_ClosedConflict(t *testing.T) {
	f := newAlertFixture()
	alert := openAlert()
	alert.Status = constants.AlertStatusClosed
	f.alerts.On("FindByID", mock.Anything, "alr-1").Return(alert, nil)

	_, err := f.svc.Escalate(ctxAs("supervisor"), "alr-1")
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeConflict, errors.CodeOf(err))
}
