package service

import (
	"strings"
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

type customerFixture struct {
	customers *repomocks.MockCustomerRepository
	alerts    *repomocks.MockAlertRepository
	txns      *repomocks.MockTransactionRepository
	cache     *fakeCache
	audit     *svcmocks.MockAuditService
	svc       CustomerAppService
}

func newCustomerFixture() *customerFixture {
	f := &customerFixture{
		customers: new(repomocks.MockCustomerRepository),
		alerts:    new(repomocks.MockAlertRepository),
		txns:      new(repomocks.MockTransactionRepository),
		cache:     newFakeCache(),
		audit:     new(svcmocks.MockAuditService),
	}
	f.audit.On("Record", mock.Anything, mock.Anything).Return()
	f.svc = NewCustomerAppService(f.customers, f.alerts, f.txns, f.cache, f.audit, logger.NewNoopLogger())
	return f
}

func createReq() *dto.CustomerCreateRequest {
	return &dto.CustomerCreateRequest{
		FullName:           "Siti Rahayu",
		NIK:                "3175064107880003",
		DateOfBirth:        "1988-07-01",
		Address:            "Jl. Gatot Subroto 5, Jakarta",
		Occupation:         "Politician",
		IncomeLevel:        "High",
		PEPStatus:          true,
		SuspiciousActivity: true,
		TransactionProfile: "high-value transfers",
	}
}

func TestCustomerRegister(t *testing.T) {
	f := newCustomerFixture()
	f.customers.On("FindByNIK", mock.Anything, "3175064107880003").Return(nil, nil)
	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Register(ctxAs("kyc_analyst"), createReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Under Review", resp.VerificationStatus)
	// Registration always runs the initial assessment.
	assert.Equal(t, 0.91, resp.RiskScore)
	assert.Equal(t, "High", resp.RiskCategory)

	cached, ok := f.cache.Get(resp.ID)
	require.True(t, ok)
	assert.Equal(t, resp.ID, cached.ID)
	f.customers.AssertExpectations(t)
}

func TestCustomerRegister_DuplicateNIK(t *testing.T) {
	f := newCustomerFixture()
	f.customers.On("FindByNIK", mock.Anything, "3175064107880003").
		Return(&models.Customer{ID: "cst-existing"}, nil)

	_, err := f.svc.Register(ctxAs("compliance_officer"), createReq())
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeConflict, errors.CodeOf(err))
	f.customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerRegister_Forbidden(t *testing.T) {
	f := newCustomerFixture()

	// Supervisors hold read-only access to customer records.
	_, err := f.svc.Register(ctxAs("supervisor"), createReq())
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeForbidden, errors.CodeOf(err))
	f.customers.AssertNotCalled(t, "FindByNIK", mock.Anything, mock.Anything)
	f.audit.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
		return e.Action == constants.ActionAccessDenied
	}))
}

func TestCustomerGet_CacheHit(t *testing.T) {
	f := newCustomerFixture()
	f.cache.Set(&models.Customer{ID: "cst-1", FullName: "Budi"})

	resp, err := f.svc.Get(ctxAs("supervisor"), "cst-1")
	require.NoError(t, err)
	assert.Equal(t, "Budi", resp.FullName)
	f.customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCustomerGet_NotFound(t *testing.T) {
	f := newCustomerFixture()
	f.customers.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	_, err := f.svc.Get(ctxAs("kyc_analyst"), "missing")
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeNotFound, errors.CodeOf(err))
}

func TestCustomerUpdate_RescoresOnRiskInputChange(t *testing.T) {
	f := newCustomerFixture()
	existing := &models.Customer{
		ID:                 "cst-1",
		FullName:           "Budi Santoso",
		NIK:                "3175064103900002",
		Address:            "Jl. Sudirman 12",
		Occupation:         "Student",
		IncomeLevel:        constants.IncomeLevelLow,
		TransactionProfile: "regular small transfers",
		RiskScore:          0.08,
		RiskCategory:       constants.RiskCategoryLow,
	}
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(existing, nil)
	f.customers.On("Update", mock.Anything, mock.Anything).Return(nil)

	occupation := "Politician"
	pep := true
	resp, err := f.svc.Update(ctxAs("kyc_analyst"), "cst-1", &dto.CustomerUpdateRequest{
		Occupation: &occupation,
		PEPStatus:  &pep,
	})
	require.NoError(t, err)

	// 1.0*0.25 + 0.2*0.10 + 0.3 + 0 + 0.3*0.10 = 0.60
	assert.InDelta(t, 0.60, resp.RiskScore, 1e-9)
	assert.Equal(t, "Medium", resp.RiskCategory)
	assert.False(t, resp.RiskOverridden)
}

func TestCustomerUpdate_KeepsOverrideOnNonRiskEdit(t *testing.T) {
	f := newCustomerFixture()
	existing := &models.Customer{
		ID:             "cst-1",
		FullName:       "Budi Santoso",
		NIK:            "3175064103900002",
		Address:        "Jl. Sudirman 12",
		Occupation:     "Student",
		IncomeLevel:    constants.IncomeLevelLow,
		RiskScore:      0.85,
		RiskCategory:   constants.RiskCategoryHigh,
		RiskOverridden: true,
	}
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(existing, nil)
	f.customers.On("Update", mock.Anything, mock.Anything).Return(nil)

	address := "Jl. Thamrin 88"
	resp, err := f.svc.Update(ctxAs("kyc_analyst"), "cst-1", &dto.CustomerUpdateRequest{
		Address: &address,
	})
	require.NoError(t, err)

	// An address edit does not touch the overridden score.
	assert.Equal(t, 0.85, resp.RiskScore)
	assert.True(t, resp.RiskOverridden)
}

func TestCustomerDelete_ArchivesWithHistory(t *testing.T) {
	f := newCustomerFixture()
	existing := &models.Customer{ID: "cst-1", FullName: "Budi", NIK: "3175064103900002"}
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(existing, nil)
	f.alerts.On("CountByCustomer", mock.Anything, "cst-1").Return(int64(2), nil)
	f.txns.On("CountByCustomer", mock.Anything, "cst-1").Return(int64(5), nil)
	f.customers.On("Archive", mock.Anything, mock.MatchedBy(func(a *models.ArchivedCustomer) bool {
		return strings.HasPrefix(a.NIK, "3175064103900002_archived_") && len(a.Snapshot) > 0
	})).Return(nil)

	result, err := f.svc.Delete(ctxAs("admin"), "cst-1", "offboarding")
	require.NoError(t, err)
	assert.True(t, result.Archived)
	assert.False(t, result.Deleted)
	f.customers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	_, cached := f.cache.Get("cst-1")
	assert.False(t, cached)
}

func TestCustomerDelete_RemovesWithoutHistory(t *testing.T) {
	f := newCustomerFixture()
	existing := &models.Customer{ID: "cst-1", FullName: "Budi", NIK: "3175064103900002"}
	f.customers.On("FindByID", mock.Anything, "cst-1").Return(existing, nil)
	f.alerts.On("CountByCustomer", mock.Anything, "cst-1").Return(int64(0), nil)
	f.txns.On("CountByCustomer", mock.Anything, "cst-1").Return(int64(0), nil)
	f.customers.On("Delete", mock.Anything, "cst-1").Return(nil)

	result, err := f.svc.Delete(ctxAs("admin"), "cst-1", "")
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.False(t, result.Archived)
	f.customers.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
}

func TestCustomerDelete_ForbiddenForAnalyst(t *testing.T) {
	f := newCustomerFixture()

	_, err := f.svc.Delete(ctxAs("kyc_analyst"), "cst-1", "")
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeForbidden, errors.CodeOf(err))
}
