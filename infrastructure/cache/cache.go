package cache

import (
	"context"
	"fmt"

	"vidstream/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to Redis. The application treats Redis as optional: a
// nil client downgrades metadata caching to a no-op rather than failing boot.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without cache")
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
