// Package crypto implements session token issuance and verification.
package crypto

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openkyc/kyc/internal/config"
	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/service"
	apperrors "github.com/openkyc/kyc/pkg/errors"
)

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManagerImpl signs and verifies HS256 session tokens.
type JWTManagerImpl struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager creates the token manager from the JWT configuration.
func NewJWTManager(cfg *config.JWTConfig) (service.TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &JWTManagerImpl{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.SessionTTLDuration(),
	}, nil
}

func (m *JWTManagerImpl) Issue(user *models.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(m.ttl)

	claims := sessionClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

func (m *JWTManagerImpl) Verify(tokenString string) (*service.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperrors.ErrUnauthorized("invalid or expired session token").WithCause(err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthorized("invalid or expired session token")
	}

	return &service.SessionClaims{
		UserID:    claims.Subject,
		Username:  claims.Username,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
