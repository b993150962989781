// Package service defines the domain-level service seams that the
// application layer depends on. Implementations live in infrastructure.
package service

import (
	"context"
	"time"

	"github.com/openkyc/kyc/internal/domain/models"
)

//go:generate mockery --name AuditService --output mocks --outpkg mocks
// AuditService records audit trail events. Recording must never fail a
// business operation: implementations log and swallow sink errors.
type AuditService interface {
	// Record persists an audit entry to every configured sink.
	Record(ctx context.Context, entry *models.AuditLog)
}

//go:generate mockery --name LoginThrottle --output mocks --outpkg mocks
// LoginThrottle tracks failed login attempts per account and enforces the
// temporary lockout once the attempt budget is spent.
type LoginThrottle interface {
	// RegisterFailure increments the failed-attempt counter and returns the
	// new count.
	RegisterFailure(ctx context.Context, username string) (int, error)

	// IsLocked reports whether the account is currently locked out.
	IsLocked(ctx context.Context, username string) (bool, error)

	// Reset clears the failed-attempt counter after a successful login.
	Reset(ctx context.Context, username string) error
}

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	UserID    string
	Username  string
	Role      string
	ExpiresAt time.Time
}

//go:generate mockery --name TokenManager --output mocks --outpkg mocks
// TokenManager issues and verifies session tokens.
type TokenManager interface {
	// Issue creates a signed session token for the user.
	Issue(user *models.User) (token string, expiresAt time.Time, err error)

	// Verify validates a token and returns its claims.
	Verify(token string) (*SessionClaims, error)
}

// RateLimitDimension names the scope a rate limit applies to.
type RateLimitDimension string

const (
	RateLimitDimensionIP   RateLimitDimension = "ip"
	RateLimitDimensionUser RateLimitDimension = "user"
)

// RateLimitService gates request admission.
type RateLimitService interface {
	// Allow reports whether a request under the given dimension and key may
	// proceed, with the remaining budget and the time the window resets.
	Allow(ctx context.Context, dimension RateLimitDimension, key string) (allowed bool, remaining int, resetAt time.Time, err error)
}
