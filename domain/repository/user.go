package repository

import (
	"context"

	"vidstream/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IUser defines persistence for account records.
type IUser interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (model.User, error)
	GetByUserName(ctx context.Context, userName string) (model.User, error)
	GetByChannelName(ctx context.Context, channelName string) (model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) error
	SetRole(ctx context.Context, id bson.ObjectID, role string) error
	// AddSubscription records userID following channelID and bumps the
	// channel's subscriber count. RemoveSubscription is the inverse.
	AddSubscription(ctx context.Context, userID, channelID bson.ObjectID) error
	RemoveSubscription(ctx context.Context, userID, channelID bson.ObjectID) error
}
