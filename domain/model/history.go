package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	PlatformLocal   = "local"
	PlatformYouTube = "youtube"

	// MinWatchSeconds is the minimum progress before a view is recorded.
	// Enforced on both the client tracker and the server endpoint so a direct
	// API caller cannot bypass it.
	MinWatchSeconds = 5

	// HistoryRetentionLimit caps the number of rows kept per user. Oldest
	// rows by watchedAt are evicted after every save.
	HistoryRetentionLimit = 100

	// CompletedThreshold marks a video completed once progress reaches this
	// fraction of its duration.
	CompletedThreshold = 0.9
)

// ValidPlatform reports whether p is one of the supported platforms.
func ValidPlatform(p string) bool {
	return p == PlatformLocal || p == PlatformYouTube
}

// HistoryEntry is one watch-history row. At most one entry exists per
// (user, videoId, platform); the compound unique index plus upsert semantics
// enforce that. Title/thumbnail/channelName are snapshots refreshed on every
// save and allowed to go stale between saves.
type HistoryEntry struct {
	ID             bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	User           bson.ObjectID  `bson:"user" json:"user"`
	VideoID        string         `bson:"videoId" json:"videoId"`
	Platform       string         `bson:"platform" json:"platform"`
	Title          string         `bson:"title" json:"title"`
	Thumbnail      string         `bson:"thumbnail" json:"thumbnail"`
	ChannelName    string         `bson:"channelName" json:"channelName"`
	UploadedBy     *bson.ObjectID `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	Progress       float64        `bson:"progress" json:"progress"`
	Duration       float64        `bson:"duration" json:"duration"`
	Completed      bool           `bson:"completed" json:"completed"`
	WatchCount     int64          `bson:"watchCount" json:"watchCount"`
	FirstWatchedAt time.Time      `bson:"firstWatchedAt" json:"firstWatchedAt"`
	WatchedAt      time.Time      `bson:"watchedAt" json:"watchedAt"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// WatchPercentage derives how much of the video was watched, clamped to 100.
func (h *HistoryEntry) WatchPercentage() int {
	if h.Duration <= 0 {
		return 0
	}
	pct := int(h.Progress/h.Duration*100 + 0.5)
	if pct > 100 {
		return 100
	}
	return pct
}

// ShouldComplete reports whether the entry crossed the completion threshold.
// Completion is monotone: once true it never reverts.
func (h *HistoryEntry) ShouldComplete() bool {
	if h.Completed {
		return true
	}
	return h.Duration > 0 && h.Progress >= h.Duration*CompletedThreshold
}

// VideoMetadata is the denormalized snapshot written into a history entry.
type VideoMetadata struct {
	Title       string
	Thumbnail   string
	ChannelName string
	UploadedBy  *bson.ObjectID
	Duration    float64
}
