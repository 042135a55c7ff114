package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/saletrack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoginLimiterDisabled(t *testing.T) {
	limiter, err := NewLoginLimiter(config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, limiter)
	assert.False(t, limiter.Enabled())

	result, err := limiter.Allow(context.Background(), "cashier", "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestNewLoginLimiterValidatesConfig(t *testing.T) {
	_, err := NewLoginLimiter(config.Config{RateLimit: config.RateLimitConfig{Enabled: true}}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewLoginLimiter(config.Config{RateLimit: config.RateLimitConfig{
		Enabled:   true,
		RedisAddr: "localhost:6379",
	}}, zap.NewNop())
	assert.Error(t, err)
}

func TestLoginKeyNormalizesUsername(t *testing.T) {
	assert.Equal(t, "auth:login:cashier:10.0.0.1", LoginKey("  Cashier ", "10.0.0.1"))
}

func TestTokenBucketRejectsBadArguments(t *testing.T) {
	var bucket *TokenBucket
	result, err := bucket.Allow(context.Background(), "k", 1, 1)
	assert.Error(t, err)
	assert.False(t, result.Allowed)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), retryAfter(true, 0, 1))
	assert.Equal(t, 5*time.Second, retryAfter(false, 0, 0.2))
	assert.Equal(t, 500*time.Millisecond, retryAfter(false, 0.5, 1))
}

func TestDefaultBucketTTL(t *testing.T) {
	assert.Equal(t, 50*time.Second, defaultBucketTTL(0.2, 5))
	assert.Equal(t, time.Second, defaultBucketTTL(100, 1))
	assert.Equal(t, time.Second, defaultBucketTTL(0, 0))
}

func TestCastHelpers(t *testing.T) {
	assert.Equal(t, int64(3), castToInt(int64(3)))
	assert.Equal(t, int64(2), castToInt(2.9))
	assert.Equal(t, 1.5, castToFloat("1.5"))
	assert.Equal(t, float64(4), castToFloat(int64(4)))
	assert.Equal(t, float64(0), castToFloat(nil))
}
