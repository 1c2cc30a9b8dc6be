package repository

import (
	"context"

	"vidstream/domain/dto"
	"vidstream/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Counter fields accepted by IncrementCounter.
const (
	CounterLikes   = "likes"
	CounterDislike = "dislike"
	CounterViews   = "views"
)

// IVideo defines persistence for the video catalog, including the embedded
// comment list.
type IVideo interface {
	Create(ctx context.Context, video model.Video) (model.Video, error)
	GetByID(ctx context.Context, id bson.ObjectID) (model.Video, error)
	GetAll(ctx context.Context) ([]model.Video, error)
	GetByUser(ctx context.Context, userID bson.ObjectID) ([]model.Video, error)
	GetByUsers(ctx context.Context, userIDs []bson.ObjectID) ([]model.Video, error)
	// IncrementCounter applies an atomic +1 to one of the counter fields and
	// returns the new value.
	IncrementCounter(ctx context.Context, id bson.ObjectID, field string) (int64, error)
	UpdateMetadata(ctx context.Context, id bson.ObjectID, upd dto.UpdateVideoRequest) (model.Video, error)
	AddComment(ctx context.Context, videoID bson.ObjectID, comment model.Comment) error
	UpdateComment(ctx context.Context, videoID, commentID bson.ObjectID, text string) error
	DeleteComment(ctx context.Context, videoID, commentID bson.ObjectID) error
}
