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

type auditFixture struct {
	entries *repomocks.MockAuditRepository
	audit   *svcmocks.MockAuditService
	svc     AuditAppService
}

func newAuditFixture() *auditFixture {
	f := &auditFixture{
		entries: new(repomocks.MockAuditRepository),
		audit:   new(svcmocks.MockAuditService),
	}
	f.audit.On("Record", mock.Anything, mock.Anything).Return()
	f.svc = NewAuditAppService(f.entries, f.audit, logger.NewNoopLogger())
	return f
}

func TestAuditList(t *testing.T) {
	f := newAuditFixture()
	entry := models.NewAuditLog(constants.ActionLogin, constants.AuditResultSuccess, "user logged in")
	f.entries.On("FindAll", mock.Anything, mock.Anything).Return([]*models.AuditLog{entry}, nil)
	f.entries.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	resp, err := f.svc.List(ctxAs("compliance_officer"), &dto.AuditListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestAuditList_DeniedIsAudited(t *testing.T) {
	f := newAuditFixture()

	_, err := f.svc.List(ctxAs("kyc_analyst"), &dto.AuditListRequest{})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeForbidden, errors.CodeOf(err))
	f.entries.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	f.audit.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
		return e.Action == constants.ActionAccessDenied && e.ResultCode == constants.ErrCodeForbidden
	}))
}
