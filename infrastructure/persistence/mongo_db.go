package persistence

import (
	"context"
	"fmt"

	"vidstream/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	UsersCollection     = "users"
	VideosCollection    = "videos"
	HistoriesCollection = "histories"
)

// NewMongoDb connects to MongoDB and returns the client. Credentials are
// optional for local development setups.
func NewMongoDb(host, port, user, password, name string) (*mongo.Client, error) {
	var uri string
	if user != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin", user, password, host, port, name)
	} else {
		uri = fmt.Sprintf("mongodb://%s:%s/%s", host, port, name)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to MongoDB")
		return nil, err
	}
	return client, nil
}

// EnsureIndexes bootstraps the indexes the application relies on. The
// compound unique index on histories is load-bearing: the atomic upsert and
// the duplicate-key conflict handling both depend on it.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure users index: %w", err)
	}

	_, err = db.Collection(HistoriesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "videoId", Value: 1}, {Key: "platform", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "watchedAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("ensure histories indexes: %w", err)
	}
	return nil
}
