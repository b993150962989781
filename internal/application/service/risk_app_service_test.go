package service

import (
	"testing"

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

type riskFixture struct {
	customers *repomocks.MockCustomerRepository
	alerts    *repomocks.MockAlertRepository
	cache     *fakeCache
	audit     *svcmocks.MockAuditService
	svc       RiskAppService
}

func newRiskFixture() *riskFixture {
	f := &riskFixture{
		customers: new(repomocks.MockCustomerRepository),
		alerts:    new(repomocks.MockAlertRepository),
		cache:     newFakeCache(),
		audit:     new(svcmocks.MockAuditService),
	}
	f.audit.On("Record", mock.Anything, mock.Anything).Return()
	f.svc = NewRiskAppService(f.customers, f.alerts, f.cache, f.audit, logger.NewNoopLogger())
	return f
}

func highRiskInputs() *models.Customer {
	return &models.Customer{
		ID:                 "cst-1",
		FullName:           "Siti Rahayu",
		NIK:                "3175064107880003",
		Address:            "Jl. Gatot Subroto 5",
		Occupation:         "Politician",
		IncomeLevel:        constants.IncomeLevelHigh,
		PEPStatus:          true,
		SuspiciousActivity: true,
		TransactionProfile: "high-value transfers",
		RiskScore:          0.45,
		RiskCategory:       constants.RiskCategoryMedium,
	}
}

func TestRiskAssess_EscalationRaisesAlert(t *testing.T) {
	f := newRiskFixture()
	customer := highRiskInputs()
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(customer, nil)
	f.customers.On("Update", mock.Anything, customer).Return(nil)
	f.alerts.On("Save", mock.Anything, mock.MatchedBy(func(a *models.Alert) bool {
		return a.Type == constants.AlertTypeRiskEscalation && a.Severity == constants.SeverityHigh
	})).Return(nil)

	resp, err := f.svc.Assess(ctxAs("risk_officer"), "cst-1")
	require.NoError(t, err)

	assert.Equal(t, 0.91, resp.Score)
	assert.Equal(t, "High", resp.Category)
	assert.True(t, resp.AlertRaised)
	assert.Len(t, resp.Reasons, 5)
	f.alerts.AssertExpectations(t)
}

func TestRiskAssess_NoAlertWhenAlreadyHigh(t *testing.T) {
	f := newRiskFixture()
	customer := highRiskInputs()
	customer.RiskCategory = constants.RiskCategoryHigh
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(customer, nil)
	f.customers.On("Update", mock.Anything, customer).Return(nil)

	resp, err := f.svc.Assess(ctxAs("compliance_officer"), "cst-1")
	require.NoError(t, err)
	assert.False(t, resp.AlertRaised)
	f.alerts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRiskAssess_ForbiddenForAnalyst(t *testing.T) {
	f := newRiskFixture()

	// Analysts read risk results but cannot run assessments.
	_, err := f.svc.Assess(ctxAs("kyc_analyst"), "cst-1")
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeForbidden, errors.CodeOf(err))
}

func TestRiskOverride(t *testing.T) {
	f := newRiskFixture()
	customer := highRiskInputs()
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(customer, nil)
	f.customers.On("Update", mock.Anything, customer).Return(nil)

	resp, err := f.svc.Override(ctxAs("risk_officer"), "cst-1", &dto.RiskOverrideRequest{
		Score:         0.2,
		Justification: "Source of funds verified with documentation",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.2, resp.Score)
	assert.Equal(t, "Low", resp.Category)
	assert.True(t, resp.Overridden)
	assert.Contains(t, customer.Notes, "Risk override")
	assert.Contains(t, customer.Notes, "Source of funds verified")
}

func TestRiskOverride_RequiresApprove(t *testing.T) {
	f := newRiskFixture()

	_, err := f.svc.Override(ctxAs("kyc_analyst"), "cst-1", &dto.RiskOverrideRequest{
		Score:         0.1,
		Justification: "n/a",
	})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeForbidden, errors.CodeOf(err))
}

func TestRecordEDDAction(t *testing.T) {
	f := newRiskFixture()
	customer := highRiskInputs()
	customer.RiskCategory = constants.RiskCategoryHigh
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(customer, nil)
	f.customers.On("Update", mock.Anything, customer).Return(nil)
	f.alerts.On("Save", mock.Anything, mock.MatchedBy(func(a *models.Alert) bool {
		return a.Type == constants.AlertTypeEDDInterview && a.Status == constants.AlertStatusScheduled
	})).Return(nil)

	resp, err := f.svc.RecordEDDAction(ctxAs("compliance_officer"), "cst-1", &dto.EDDActionRequest{
		Action: "EDD Interview",
	})
	require.NoError(t, err)
	assert.Equal(t, "EDD Interview", resp.Type)
	assert.Equal(t, "Scheduled", resp.Status)
	assert.Contains(t, customer.Notes, "EDD: EDD Interview")
}

func TestRecordEDDAction_RejectsNonHighRisk(t *testing.T) {
	f := newRiskFixture()
	customer := highRiskInputs() // Medium category
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(customer, nil)

	_, err := f.svc.RecordEDDAction(ctxAs("compliance_officer"), "cst-1", &dto.EDDActionRequest{
		Action: "Document Request",
	})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeInvalidRequest, errors.CodeOf(err))
}
