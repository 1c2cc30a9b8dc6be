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
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.IUser {
	return &UserRepository{collection: db.Collection(UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, model.ErrConflict
		}
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":     err,
			"user_name": user.UserName,
		}).Error("mongo: create user failed")
		return model.User{}, err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	return r.findOne(ctx, bson.M{"userName": userName})
}

func (r *UserRepository) GetByChannelName(ctx context.Context, channelName string) (model.User, error) {
	return r.findOne(ctx, bson.M{"channelName": channelName})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var u model.User
	err := r.collection.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) error {
	return r.setField(ctx, id, bson.M{"isBlocked": blocked})
}

func (r *UserRepository) SetRole(ctx context.Context, id bson.ObjectID, role string) error {
	return r.setField(ctx, id, bson.M{"role": role})
}

func (r *UserRepository) setField(ctx context.Context, id bson.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AddSubscription(ctx context.Context, userID, channelID bson.ObjectID) error {
	// updatedAt is deliberately left alone here so ModifiedCount reflects
	// only whether the subscription set actually changed.
	res, err := r.collection.UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"subscribedChannels": channelID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		// $addToSet found the channel already present.
		return model.ErrConflict
	}

	_, err = r.collection.UpdateByID(ctx, channelID, bson.M{"$inc": bson.M{"subscribers": 1}})
	return err
}

func (r *UserRepository) RemoveSubscription(ctx context.Context, userID, channelID bson.ObjectID) error {
	res, err := r.collection.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"subscribedChannels": channelID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return model.ErrNotFound
	}

	_, err = r.collection.UpdateByID(ctx, channelID, bson.M{"$inc": bson.M{"subscribers": -1}})
	return err
}
