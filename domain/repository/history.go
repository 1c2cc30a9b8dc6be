package repository

import (
	"context"

	"vidstream/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IHistory defines persistence for watch-history rows. Upsert must be a
// single atomic storage operation: two concurrent first-time saves for the
// same (user, videoId, platform) race on the unique index, and the loser must
// surface model.ErrConflict rather than create a duplicate.
type IHistory interface {
	Upsert(ctx context.Context, user bson.ObjectID, videoID, platform string, progress float64, meta model.VideoMetadata) (model.HistoryEntry, error)
	// MarkCompleted flips the completed flag to true. There is no inverse;
	// completion never reverts.
	MarkCompleted(ctx context.Context, id bson.ObjectID) error
	// List returns one page ordered by watchedAt descending plus the total
	// row count for the filter.
	List(ctx context.Context, user bson.ObjectID, platform string, skip, limit int) ([]model.HistoryEntry, int64, error)
	GetOne(ctx context.Context, user bson.ObjectID, videoID, platform string) (model.HistoryEntry, error)
	DeleteOne(ctx context.Context, user bson.ObjectID, videoID, platform string) error
	DeleteAll(ctx context.Context, user bson.ObjectID) (int64, error)
	// TrimToLimit deletes rows beyond the `limit` most recently watched and
	// returns how many were removed.
	TrimToLimit(ctx context.Context, user bson.ObjectID, limit int) (int64, error)
}
