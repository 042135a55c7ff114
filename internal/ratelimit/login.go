package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/saletrack/internal/config"
	"go.uber.org/zap"
)

const keyLogin = "auth:login:%s:%s"

// LoginLimiter throttles login attempts per username and client address.
// A nil LoginLimiter allows every attempt.
type LoginLimiter struct {
	bucket *TokenBucket
	log    *zap.Logger
	rate   float64
	burst  int
}

func NewLoginLimiter(cfg config.Config, log *zap.Logger) (*LoginLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.LoginRate <= 0 || limitCfg.LoginBurst <= 0 {
		return nil, errors.New("login rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &LoginLimiter{
		bucket: NewTokenBucket(client),
		log:    log.Named("ratelimit.login"),
		rate:   limitCfg.LoginRate,
		burst:  limitCfg.LoginBurst,
	}, nil
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow consumes one attempt. Redis failures fail open.
func (l *LoginLimiter) Allow(ctx context.Context, username, clientIP string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}

	key := LoginKey(username, clientIP)
	result, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
	if err != nil {
		l.log.Warn("login rate limit unavailable", zap.String("key", key), zap.Error(err))
		return &RateLimitResult{Allowed: true, Limit: l.burst}, nil
	}
	return result, nil
}

// LoginKey builds the bucket key for an attempt.
func LoginKey(username, clientIP string) string {
	return fmt.Sprintf(keyLogin, strings.ToLower(strings.TrimSpace(username)), strings.TrimSpace(clientIP))
}
