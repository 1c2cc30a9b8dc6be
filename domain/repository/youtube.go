package repository

import (
	"context"
	"time"

	"vidstream/domain/dto"
)

// IYouTubeMetadata is the external metadata lookup collaborator for youtube
// platform history entries. Implementations must be safe to call from
// concurrent requests.
type IYouTubeMetadata interface {
	GetVideoMetadata(ctx context.Context, videoID string) (dto.YouTubeMetadata, error)
}

// IMetadataCache caches metadata lookups so repeated saves for the same
// youtube video do not hammer the API. A nil-safe no-op implementation is
// used when Redis is not configured.
type IMetadataCache interface {
	GetVideo(ctx context.Context, videoID string) (*dto.YouTubeMetadata, error)
	SetVideo(ctx context.Context, videoID string, meta dto.YouTubeMetadata, ttl time.Duration) error
}
