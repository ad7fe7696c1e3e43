package store

import (
	"context"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
)

// Storages groups the non-relational stores.
type Storages struct {
	AvatarStorage AvatarStorage
	RateLimiter   RateLimiter
}

// NewStorages picks S3 for avatars when a bucket is configured and the local
// directory otherwise. Rate limiting needs a reachable redis; without one it
// is switched off and a warning is logged.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		avatars AvatarStorage
		err     error
	)

	if cfg.S3.Bucket != "" {
		avatars, err = NewS3AvatarStorage(ctx, cfg.S3, log)
	} else {
		avatars, err = NewLocalAvatarStorage(cfg.Files.AvatarDir, cfg.Files.PublicPrefix, log)
	}
	if err != nil {
		return nil, err
	}

	limiter := NewNopRateLimiter()
	if cfg.Redis.Address != "" {
		redisLimiter, err := NewRedisRateLimiter(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiting is disabled")
		} else {
			limiter = redisLimiter
		}
	}

	return &Storages{AvatarStorage: avatars, RateLimiter: limiter}, nil
}
