package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/domain/access"
	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/repository"
	domainservice "github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

// AuthAppService implements authentication and account management.
type AuthAppService interface {
	// Login verifies credentials and issues a session token. Repeated
	// failures lock the account for the lockout window.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// CreateUser provisions a staff account. Admin only.
	CreateUser(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserResponse, error)

	// ListUsers lists staff accounts. Admin only.
	ListUsers(ctx context.Context, page, pageSize int) (*dto.ListResponse, error)

	// DeactivateUser disables a staff account. Admin only.
	DeactivateUser(ctx context.Context, id string) (*dto.UserResponse, error)
}

type authAppService struct {
	users    repository.UserRepository
	throttle domainservice.LoginThrottle
	tokens   domainservice.TokenManager
	audit    domainservice.AuditService
	logger   logger.Logger
}

// NewAuthAppService creates the authentication application service.
func NewAuthAppService(
	users repository.UserRepository,
	throttle domainservice.LoginThrottle,
	tokens domainservice.TokenManager,
	audit domainservice.AuditService,
	log logger.Logger,
) AuthAppService {
	return &authAppService{
		users:    users,
		throttle: throttle,
		tokens:   tokens,
		audit:    audit,
		logger:   log.WithComponent("auth_app_service"),
	}
}

func (s *authAppService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	locked, err := s.throttle.IsLocked(ctx, req.Username)
	if err != nil {
		s.logger.Error(ctx, "login throttle check failed", err, logger.Fields{"username": req.Username})
		return nil, errors.ErrInternal("login temporarily unavailable", err)
	}
	if locked {
		s.recordLoginFailure(ctx, req.Username, "account locked")
		return nil, errors.ErrAccountLocked("too many failed attempts, try again later")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.ErrInternal("user lookup failed", err)
	}

	// The same rejection for unknown user and bad password, so login
	// responses do not leak which usernames exist.
	if user == nil || !user.Active ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, s.failLogin(ctx, req.Username)
	}

	if err := s.throttle.Reset(ctx, req.Username); err != nil {
		s.logger.Warn(ctx, "failed to reset login throttle", logger.Fields{"username": req.Username})
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", err, logger.Fields{"username": req.Username})
		return nil, errors.ErrInternal("failed to issue session token", err)
	}

	user.LastLoginAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn(ctx, "failed to record last login", logger.Fields{"username": req.Username})
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionLogin, constants.AuditResultSuccess,
		fmt.Sprintf("user %s logged in", user.Username)).
		WithActor(user.ID, user.Role).
		WithEntity("user", user.ID))
	s.logger.Info(ctx, "login succeeded", logger.Fields{"username": user.Username, "role": user.Role})

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

// failLogin registers a failed attempt and returns the generic credentials
// error, or the lockout error when this failure spends the attempt budget.
func (s *authAppService) failLogin(ctx context.Context, username string) error {
	attempts, err := s.throttle.RegisterFailure(ctx, username)
	if err != nil {
		s.logger.Error(ctx, "failed to register login failure", err, logger.Fields{"username": username})
	}
	s.recordLoginFailure(ctx, username, fmt.Sprintf("invalid credentials (attempt %d)", attempts))

	if attempts >= constants.MaxLoginAttempts {
		return errors.ErrAccountLocked("too many failed attempts, try again later")
	}
	return errors.ErrUnauthorized("invalid username or password")
}

func (s *authAppService) recordLoginFailure(ctx context.Context, username, reason string) {
	s.audit.Record(ctx, models.NewAuditLog(constants.ActionLoginFailure, constants.AuditResultFailure, reason).
		WithActor(username, "").
		WithResultCode(constants.ErrCodeUnauthorized))
}

func (s *authAppService) CreateUser(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceUser, access.PermissionAdmin) {
		s.denied(ctx, actor, constants.ActionCreateUser, "")
		return nil, errors.ErrForbidden("role cannot manage users")
	}

	if !access.KnownRole(req.Role) {
		return nil, errors.ErrValidation(fmt.Sprintf("unknown role %q", req.Role))
	}

	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.ErrInternal("user lookup failed", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("username %s is taken", req.Username))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.ErrInternal("password hashing failed", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error(ctx, "failed to save user", err, logger.Fields{"username": req.Username})
		return nil, err
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionCreateUser, constants.AuditResultSuccess,
		fmt.Sprintf("created user %s (%s)", user.Username, user.Role)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("user", user.ID))

	return dto.NewUserResponse(user), nil
}

func (s *authAppService) ListUsers(ctx context.Context, page, pageSize int) (*dto.ListResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceUser, access.PermissionAdmin) {
		s.denied(ctx, actor, constants.ActionCreateUser, "")
		return nil, errors.ErrForbidden("role cannot manage users")
	}

	page, pageSize = normalizePage(page, pageSize)
	users, err := s.users.FindAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errors.ErrInternal("user listing failed", err)
	}
	return dto.NewListResponse(dto.NewUserResponses(users), page, pageSize, int64(len(users))), nil
}

func (s *authAppService) DeactivateUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	actor := ActorFromContext(ctx)
	if !access.CheckAccess(actor.Role, access.ResourceUser, access.PermissionAdmin) {
		s.denied(ctx, actor, constants.ActionDeactivateUser, id)
		return nil, errors.ErrForbidden("role cannot manage users")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal("user lookup failed", err)
	}
	if user == nil {
		return nil, errors.ErrNotFound("user", id)
	}
	if user.ID == actor.UserID {
		return nil, errors.ErrInvalidRequest("cannot deactivate your own account")
	}

	user.Active = false
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error(ctx, "failed to deactivate user", err, logger.Fields{"user_id": id})
		return nil, err
	}

	s.audit.Record(ctx, models.NewAuditLog(constants.ActionDeactivateUser, constants.AuditResultSuccess,
		fmt.Sprintf("deactivated user %s", user.Username)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("user", id))

	return dto.NewUserResponse(user), nil
}

func (s *authAppService) denied(ctx context.Context, actor Actor, action constants.AuditAction, userID string) {
	s.audit.Record(ctx, models.NewAuditLog(constants.ActionAccessDenied, constants.AuditResultFailure,
		fmt.Sprintf("denied %s for role %q", action, actor.Role)).
		WithActor(actor.UserID, actor.Role).
		WithEntity("user", userID).
		WithResultCode(constants.ErrCodeForbidden))
}
