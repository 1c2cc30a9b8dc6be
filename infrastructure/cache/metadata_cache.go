package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vidstream/domain/dto"
	"vidstream/domain/repository"
	"vidstream/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// MetadataCache stores YouTube metadata lookups in Redis so repeated history
// saves for the same video skip the API call. With a nil client every method
// is a no-op, which keeps the caller free of nil checks.
type MetadataCache struct {
	client *redis.Client
}

func NewMetadataCache(client *redis.Client) repository.IMetadataCache {
	return &MetadataCache{client: client}
}

func metadataKey(videoID string) string {
	return "yt:metadata:" + videoID
}

func (c *MetadataCache) GetVideo(ctx context.Context, videoID string) (*dto.YouTubeMetadata, error) {
	if c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, metadataKey(videoID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var meta dto.YouTubeMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		logger.GetLogger().WithField("error", err).Error("cache: corrupt metadata entry")
		return nil, nil
	}
	return &meta, nil
}

func (c *MetadataCache) SetVideo(ctx context.Context, videoID string, meta dto.YouTubeMetadata, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, metadataKey(videoID), raw, ttl).Err()
}
