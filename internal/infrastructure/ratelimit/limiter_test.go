package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/pkg/logger"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 0.001)

	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	assert.False(t, bucket.Allow())
	assert.Greater(t, bucket.TimeUntilAvailable(), time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1000)

	require.True(t, bucket.Allow())
	time.Sleep(5 * time.Millisecond)
	assert.True(t, bucket.Allow())
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(Limits{PerIPCapacity: 1, PerIPRate: 0.001, PerUserCapacity: 1, PerUserRate: 0.001}, logger.NewNoopLogger())
	defer limiter.Close()
	ctx := context.Background()

	allowed, _, _, err := limiter.Allow(ctx, service.RateLimitDimensionIP, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, _, err = limiter.Allow(ctx, service.RateLimitDimensionIP, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, _, _, err = limiter.Allow(ctx, service.RateLimitDimensionIP, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiterDimensionsAreIndependent(t *testing.T) {
	limiter := NewLimiter(Limits{PerIPCapacity: 1, PerIPRate: 0.001, PerUserCapacity: 1, PerUserRate: 0.001}, logger.NewNoopLogger())
	defer limiter.Close()
	ctx := context.Background()

	allowed, _, _, err := limiter.Allow(ctx, service.RateLimitDimensionIP, "key")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, _, err = limiter.Allow(ctx, service.RateLimitDimensionUser, "key")
	require.NoError(t, err)
	assert.True(t, allowed)
}
