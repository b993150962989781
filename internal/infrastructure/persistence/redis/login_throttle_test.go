package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/logger"
)

func newThrottleUnderTest(t *testing.T) (*miniredis.Miniredis, *LoginThrottleImpl) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	throttle := NewLoginThrottle(client, constants.MaxLoginAttempts, constants.LoginLockoutWindow, logger.NewNoopLogger())
	return mr, throttle.(*LoginThrottleImpl)
}

func TestLoginThrottleLocksAfterMaxAttempts(t *testing.T) {
	_, throttle := newThrottleUnderTest(t)
	ctx := context.Background()

	for i := 1; i < constants.MaxLoginAttempts; i++ {
		count, err := throttle.RegisterFailure(ctx, "analyst1")
		require.NoError(t, err)
		assert.Equal(t, i, count)

		locked, err := throttle.IsLocked(ctx, "analyst1")
		require.NoError(t, err)
		assert.False(t, locked)
	}

	count, err := throttle.RegisterFailure(ctx, "analyst1")
	require.NoError(t, err)
	assert.Equal(t, constants.MaxLoginAttempts, count)

	locked, err := throttle.IsLocked(ctx, "analyst1")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestLoginThrottleResetClearsCounter(t *testing.T) {
	_, throttle := newThrottleUnderTest(t)
	ctx := context.Background()

	for i := 0; i < constants.MaxLoginAttempts; i++ {
		_, err := throttle.RegisterFailure(ctx, "analyst1")
		require.NoError(t, err)
	}
	require.NoError(t, throttle.Reset(ctx, "analyst1"))

	locked, err := throttle.IsLocked(ctx, "analyst1")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLoginThrottleWindowExpiry(t *testing.T) {
	mr, throttle := newThrottleUnderTest(t)
	ctx := context.Background()

	for i := 0; i < constants.MaxLoginAttempts; i++ {
		_, err := throttle.RegisterFailure(ctx, "analyst1")
		require.NoError(t, err)
	}

	mr.FastForward(constants.LoginLockoutWindow + time.Second)

	locked, err := throttle.IsLocked(ctx, "analyst1")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLoginThrottleCountersArePerAccount(t *testing.T) {
	_, throttle := newThrottleUnderTest(t)
	ctx := context.Background()

	for i := 0; i < constants.MaxLoginAttempts; i++ {
		_, err := throttle.RegisterFailure(ctx, "analyst1")
		require.NoError(t, err)
	}

	locked, err := throttle.IsLocked(ctx, "supervisor1")
	require.NoError(t, err)
	assert.False(t, locked)
}
