package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitKeyPrefix = "financeflow:ratelimit:"
	redisPingTimeout   = 2 * time.Second
)

// ErrRateLimiterUnavailable is returned when the rate limit cache cannot be
// reached at startup.
var ErrRateLimiterUnavailable = errors.New("rate limiter cache is unavailable")

// redisRateLimiter counts hits per key in fixed windows. The first hit of a
// window creates the counter and sets its expiry.
type redisRateLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	logger *logger.Logger
}

// NewRedisRateLimiter connects to cfg.Address and checks the connection with
// a PING.
func NewRedisRateLimiter(ctx context.Context, cfg config.Redis, logger *logger.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRateLimiterUnavailable, err)
	}

	logger.Info().Str("address", cfg.Address).Int("limit", cfg.Limit).Dur("window", cfg.Window).Msg("redis rate limiter connected")
	return &redisRateLimiter{
		client: client,
		limit:  int64(cfg.Limit),
		window: cfg.Window,
		logger: logger,
	}, nil
}

// Allow registers one hit for key. It reports whether the hit is within the
// limit and how long until the current window ends.
func (l *redisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	key = rateLimitKeyPrefix + key

	var (
		incr *redis.IntCmd
		pttl *redis.DurationCmd
	)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisRateLimiter.Allow").Str("key", key).Msg("error counting hit")
		return true, 0, err
	}

	ttl := pttl.Val()
	if ttl < 0 {
		// new counter, or one left without expiry by an earlier failure
		if err = l.client.PExpire(ctx, key, l.window).Err(); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*redisRateLimiter.Allow").Str("key", key).Msg("error setting window")
			return true, 0, err
		}
		ttl = l.window
	}

	return incr.Val() <= l.limit, ttl, nil
}

// nopRateLimiter allows everything. It is used when no cache is configured.
type nopRateLimiter struct{}

// NewNopRateLimiter returns a [RateLimiter] that never limits.
func NewNopRateLimiter() RateLimiter {
	return nopRateLimiter{}
}

func (nopRateLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}
