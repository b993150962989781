package ratelimit

import (
	"context"
	"time"

	"github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/pkg/logger"
)

// Limits holds the per-dimension bucket parameters.
type Limits struct {
	// PerIPCapacity and PerIPRate gate unauthenticated traffic by client IP.
	PerIPCapacity float64
	PerIPRate     float64

	// PerUserCapacity and PerUserRate gate authenticated traffic per account.
	PerUserCapacity float64
	PerUserRate     float64
}

// DefaultLimits allows bursts of 60 per IP and 120 per user, refilling at
// one and two requests per second respectively.
func DefaultLimits() Limits {
	return Limits{
		PerIPCapacity:   60,
		PerIPRate:       1,
		PerUserCapacity: 120,
		PerUserRate:     2,
	}
}

// LimiterImpl implements RateLimitService with in-process token buckets,
// one pool per dimension. Idle buckets are evicted by a background sweep.
type LimiterImpl struct {
	pools  map[service.RateLimitDimension]*bucketPool
	logger logger.Logger
	stop   chan struct{}
}

// NewLimiter creates the rate limiter and starts its cleanup loop.
func NewLimiter(limits Limits, log logger.Logger) *LimiterImpl {
	l := &LimiterImpl{
		pools: map[service.RateLimitDimension]*bucketPool{
			service.RateLimitDimensionIP:   newBucketPool(limits.PerIPCapacity, limits.PerIPRate),
			service.RateLimitDimensionUser: newBucketPool(limits.PerUserCapacity, limits.PerUserRate),
		},
		logger: log.WithComponent("ratelimit"),
		stop:   make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *LimiterImpl) Allow(ctx context.Context, dimension service.RateLimitDimension, key string) (bool, int, time.Time, error) {
	pool, ok := l.pools[dimension]
	if !ok {
		// Unknown dimensions are not limited.
		return true, 0, time.Time{}, nil
	}

	bucket := pool.getOrCreate(key)
	allowed := bucket.Allow()
	remaining := int(bucket.Available())
	resetAt := time.Now().Add(bucket.TimeUntilAvailable())
	return allowed, remaining, resetAt, nil
}

// Close stops the cleanup loop.
func (l *LimiterImpl) Close() {
	close(l.stop)
}

func (l *LimiterImpl) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			for dimension, pool := range l.pools {
				if removed := pool.cleanup(15 * time.Minute); removed > 0 {
					l.logger.Debug(context.Background(), "evicted idle rate limit buckets", logger.Fields{
						"dimension": string(dimension),
						"removed":   removed,
					})
				}
			}
		}
	}
}
