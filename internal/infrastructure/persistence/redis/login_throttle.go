package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/pkg/logger"
)

// LoginThrottleImpl keeps failed-login counters in Redis so the lockout
// survives restarts and is shared across instances.
type LoginThrottleImpl struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	logger      logger.Logger
}

// NewLoginThrottle creates the Redis-backed login throttle.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration, log logger.Logger) service.LoginThrottle {
	return &LoginThrottleImpl{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      log.WithComponent("login_throttle"),
	}
}

func throttleKey(username string) string {
	return fmt.Sprintf("kyc:login_failures:%s", username)
}

func (t *LoginThrottleImpl) RegisterFailure(ctx context.Context, username string) (int, error) {
	key := throttleKey(username)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Error(ctx, "failed to increment login failure counter", err)
		return 0, err
	}
	// The window starts at the first failure and is not extended by later ones.
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			t.logger.Error(ctx, "failed to set lockout window", err)
		}
	}
	return int(count), nil
}

func (t *LoginThrottleImpl) IsLocked(ctx context.Context, username string) (bool, error) {
	count, err := t.client.Get(ctx, throttleKey(username)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		t.logger.Error(ctx, "failed to read login failure counter", err)
		return false, err
	}
	return count >= t.maxAttempts, nil
}

func (t *LoginThrottleImpl) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, throttleKey(username)).Err()
}
