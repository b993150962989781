// Package redis holds the Redis-backed infrastructure: the shared client and
// the login throttle counters.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openkyc/kyc/internal/config"
	"github.com/openkyc/kyc/pkg/logger"
)

// RedisConnection manages the Redis client lifecycle.
type RedisConnection struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisConnection opens the Redis client and verifies connectivity.
func NewRedisConnection(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*RedisConnection, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is nil")
	}
	log = log.WithComponent("redis")

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info(ctx, "Redis connection established", logger.Fields{
		"address": cfg.Address,
		"db":      cfg.DB,
	})
	return &RedisConnection{client: client, logger: log}, nil
}

// Client returns the shared Redis client.
func (rc *RedisConnection) Client() *redis.Client {
	return rc.client
}

// HealthCheck reports connectivity and pool statistics.
func (rc *RedisConnection) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	start := time.Now()
	if err := rc.client.Ping(ctx).Err(); err != nil {
		return map[string]interface{}{"status": "unhealthy", "error": err.Error()}, err
	}

	stats := rc.client.PoolStats()
	return map[string]interface{}{
		"status":      "healthy",
		"latency_ms":  time.Since(start).Milliseconds(),
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
	}, nil
}

// Close shuts down the client.
func (rc *RedisConnection) Close() error {
	if err := rc.client.Close(); err != nil {
		return err
	}
	rc.logger.Info(context.Background(), "Redis connection closed")
	return nil
}
