package persistence

import (
	"context"
	"errors"
	"time"

	"vidstream/domain/model"
	"vidstream/domain/repository"
	"vidstream/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type HistoryRepository struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) repository.IHistory {
	return &HistoryRepository{collection: db.Collection(HistoriesCollection)}
}

// Upsert writes one history row in a single FindOneAndUpdate so two
// concurrent saves for the same key cannot both insert. The unique index
// backs this up: if the race still produces a duplicate-key error it is
// surfaced as model.ErrConflict, never as a crash or a second row.
func (r *HistoryRepository) Upsert(ctx context.Context, user bson.ObjectID, videoID, platform string, progress float64, meta model.VideoMetadata) (model.HistoryEntry, error) {
	now := time.Now().UTC()

	set := bson.M{
		"title":       meta.Title,
		"thumbnail":   meta.Thumbnail,
		"channelName": meta.ChannelName,
		"progress":    progress,
		"duration":    meta.Duration,
		"watchedAt":   now,
		"updatedAt":   now,
	}
	if meta.UploadedBy != nil {
		set["uploadedBy"] = *meta.UploadedBy
	}

	filter := bson.M{"user": user, "videoId": videoID, "platform": platform}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"watchCount": 1},
		"$setOnInsert": bson.M{
			"firstWatchedAt": now,
			"createdAt":      now,
			"completed":      false,
		},
	}

	var entry model.HistoryEntry
	err := r.collection.FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the insert race against a concurrent save for the same key.
			return model.HistoryEntry{}, model.ErrConflict
		}
		logger.GetLogger().WithField("error", err).Error("mongo: history upsert failed")
		return model.HistoryEntry{}, err
	}
	return entry, nil
}

func (r *HistoryRepository) MarkCompleted(ctx context.Context, id bson.ObjectID) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"completed": true, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: mark completed failed")
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, user bson.ObjectID, platform string, skip, limit int) ([]model.HistoryEntry, int64, error) {
	filter := bson.M{"user": user}
	if platform != "" {
		filter["platform"] = platform
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "watchedAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if cerr := cursor.Close(ctx); cerr != nil {
			logger.GetLogger().WithField("error", cerr).Error("mongo: closing history cursor failed")
		}
	}()

	entries := make([]model.HistoryEntry, 0, limit)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *HistoryRepository) GetOne(ctx context.Context, user bson.ObjectID, videoID, platform string) (model.HistoryEntry, error) {
	var entry model.HistoryEntry
	err := r.collection.FindOne(ctx, bson.M{"user": user, "videoId": videoID, "platform": platform}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.HistoryEntry{}, model.ErrNotFound
	}
	if err != nil {
		return model.HistoryEntry{}, err
	}
	return entry, nil
}

func (r *HistoryRepository) DeleteOne(ctx context.Context, user bson.ObjectID, videoID, platform string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user": user, "videoId": videoID, "platform": platform})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *HistoryRepository) DeleteAll(ctx context.Context, user bson.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"user": user})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// TrimToLimit evicts rows beyond the `limit` most recently watched for the
// user. Keyset of victims is collected first so the delete stays bounded.
func (r *HistoryRepository) TrimToLimit(ctx context.Context, user bson.ObjectID, limit int) (int64, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user": user}, options.Find().
		SetSort(bson.D{{Key: "watchedAt", Value: -1}}).
		SetSkip(int64(limit)).
		SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var victims []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &victims); err != nil {
		return 0, err
	}
	if len(victims) == 0 {
		return 0, nil
	}

	ids := make([]bson.ObjectID, 0, len(victims))
	for _, v := range victims {
		ids = append(ids, v.ID)
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
