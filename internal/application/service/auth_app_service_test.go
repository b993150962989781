package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/domain/models"
	repomocks "github.com/openkyc/kyc/internal/domain/repository/mocks"
	svcmocks "github.com/openkyc/kyc/internal/domain/service/mocks"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

type authFixture struct {
	users    *repomocks.MockUserRepository
	throttle *svcmocks.MockLoginThrottle
	tokens   *svcmocks.MockTokenManager
	audit    *svcmocks.MockAuditService
	svc      AuthAppService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    new(repomocks.MockUserRepository),
		throttle: new(svcmocks.MockLoginThrottle),
		tokens:   new(svcmocks.MockTokenManager),
		audit:    new(svcmocks.MockAuditService),
	}
	f.audit.On("Record", mock.Anything, mock.Anything).Return()
	f.svc = NewAuthAppService(f.users, f.throttle, f.tokens, f.audit, logger.NewNoopLogger())
	return f
}

func analystUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "usr-1",
		Username:     "analyst1",
		PasswordHash: string(hash),
		FullName:     "Analyst One",
		Role:         "kyc_analyst",
		Active:       true,
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	user := analystUser(t, "s3cret-pass")
	expires := time.Now().Add(8 * time.Hour)

	f.throttle.On("IsLocked", mock.Anything, "analyst1").Return(false, nil)
	f.users.On("FindByUsername", mock.Anything, "analyst1").Return(user, nil)
	f.throttle.On("Reset", mock.Anything, "analyst1").Return(nil)
	f.tokens.On("Issue", user).Return("signed.jwt.token", expires, nil)
	f.users.On("Update", mock.Anything, user).Return(nil)

	resp, err := f.svc.Login(ctxAs(""), &dto.LoginRequest{Username: "analyst1", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "kyc_analyst", resp.User.Role)
	assert.False(t, user.LastLoginAt.IsZero())
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	user := analystUser(t, "s3cret-pass")

	f.throttle.On("IsLocked", mock.Anything, "analyst1").Return(false, nil)
	f.users.On("FindByUsername", mock.Anything, "analyst1").Return(user, nil)
	f.throttle.On("RegisterFailure", mock.Anything, "analyst1").Return(1, nil)

	_, err := f.svc.Login(ctxAs(""), &dto.LoginRequest{Username: "analyst1", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeUnauthorized, errors.CodeOf(err))
	f.tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	f := newAuthFixture()
	f.throttle.On("IsLocked", mock.Anything, "ghost").Return(false, nil)
	f.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)
	f.throttle.On("RegisterFailure", mock.Anything, "ghost").Return(1, nil)

	_, err := f.svc.Login(ctxAs(""), &dto.LoginRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)

	// Unknown usernames and wrong passwords are indistinguishable.
	assert.Equal(t, constants.ErrCodeUnauthorized, errors.CodeOf(err))
}

func TestLogin_LockoutOnThirdFailure(t *testing.T) {
	f := newAuthFixture()
	user := analystUser(t, "s3cret-pass")

	f.throttle.On("IsLocked", mock.Anything, "analyst1").Return(false, nil)
	f.users.On("FindByUsername", mock.Anything, "analyst1").Return(user, nil)
	f.throttle.On("RegisterFailure", mock.Anything, "analyst1").Return(constants.MaxLoginAttempts, nil)

	_, err := f.svc.Login(ctxAs(""), &dto.LoginRequest{Username: "analyst1", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeLocked, errors.CodeOf(err))
}

func TestLogin_LockedAccount(t *testing.T) {
	f := newAuthFixture()
	f.throttle.On("IsLocked", mock.Anything, "analyst1").Return(true, nil)

	_, err := f.svc.Login(ctxAs(""), &dto.LoginRequest{Username: "analyst1", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeLocked, errors.CodeOf(err))
	f.users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestLogin_InactiveUser(t *testing.T) {
	f := newAuthFixture()
	user := analystUser(t, "s3cret-pass")
	user.Active = false

	f.throttle.On("IsLocked", mock.Anything, "analyst1").Return(false, nil)
	f.users.On("FindByUsername", mock.Anything, "analyst1").Return(user, nil)
	f.throttle.On("RegisterFailure", mock.Anything, "analyst1").Return(1, nil)

	_, err := f.svc.Login(ctxAs(""), &dto.LoginRequest{Username: "analyst1", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeUnauthorized, errors.CodeOf(err))
}

func TestCreateUser(t *testing.T) {
	f := newAuthFixture()
	f.users.On("FindByUsername", mock.Anything, "officer1").Return(nil, nil)
	f.users.On("Save", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "officer1" && u.Active &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("long-password-1")) == nil
	})).Return(nil)

	resp, err := f.svc.CreateUser(ctxAs("admin"), &dto.UserCreateRequest{
		Username: "officer1",
		Password: "long-password-1",
		FullName: "Officer One",
		Role:     "compliance_officer",
	})
	require.NoError(t, err)
	assert.Equal(t, "compliance_officer", resp.Role)
	assert.True(t, resp.Active)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.CreateUser(ctxAs("admin"), &dto.UserCreateRequest{
		Username: "officer1",
		Password: "long-password-1",
		FullName: "Officer One",
		Role:     "superuser",
	})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeValidation, errors.CodeOf(err))
}

func TestCreateUser_AdminOnly(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.CreateUser(ctxAs("compliance_officer"), &dto.UserCreateRequest{
		Username: "officer2",
		Password: "long-password-1",
		FullName: "Officer Two",
		Role:     "kyc_analyst",
	})
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeForbidden, errors.CodeOf(err))
}

func TestDeactivateUser_SelfRejected(t *testing.T) {
	f := newAuthFixture()
	f.users.On("FindByID", mock.Anything, "usr-test").Return(&models.User{ID: "usr-test", Username: "tester", Role: "admin", Active: true}, nil)

	_, err := f.svc.DeactivateUser(ctxAs("admin"), "usr-test")
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestDeactivateUser(t *testing.T) {
	f := newAuthFixture()
	target := &models.User{ID: "usr-2", Username: "analyst1", Role: "kyc_analyst", Active: true}
	f.users.On("FindByID", mock.Anything, "usr-2").Return(target, nil)
	f.users.On("Update", mock.Anything, target).Return(nil)

	resp, err := f.svc.DeactivateUser(ctxAs("admin"), "usr-2")
	require.NoError(t, err)
	assert.False(t, resp.Active)
}
