package persistence

import (
	"context"
	"errors"
	"time"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/domain/repository"
	"vidstream/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type VideoRepository struct {
	collection *mongo.Collection
	users      *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) repository.IVideo {
	return &VideoRepository{
		collection: db.Collection(VideosCollection),
		users:      db.Collection(UsersCollection),
	}
}

func (r *VideoRepository) Create(ctx context.Context, video model.Video) (model.Video, error) {
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now
	if video.Category == "" {
		video.Category = "All"
	}
	if video.Comments == nil {
		video.Comments = []model.Comment{}
	}

	res, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: create video failed")
		return model.Video{}, err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		video.ID = id
	}
	return video, nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id bson.ObjectID) (model.Video, error) {
	var v model.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Video{}, model.ErrNotFound
	}
	if err != nil {
		return model.Video{}, err
	}
	r.attachOwners(ctx, []*model.Video{&v})
	return v, nil
}

func (r *VideoRepository) GetAll(ctx context.Context) ([]model.Video, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *VideoRepository) GetByUser(ctx context.Context, userID bson.ObjectID) ([]model.Video, error) {
	return r.findMany(ctx, bson.M{"user": userID})
}

func (r *VideoRepository) GetByUsers(ctx context.Context, userIDs []bson.ObjectID) ([]model.Video, error) {
	if len(userIDs) == 0 {
		return []model.Video{}, nil
	}
	return r.findMany(ctx, bson.M{"user": bson.M{"$in": userIDs}})
}

func (r *VideoRepository) findMany(ctx context.Context, filter bson.M) ([]model.Video, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	videos := []model.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}

	refs := make([]*model.Video, len(videos))
	for i := range videos {
		refs[i] = &videos[i]
	}
	r.attachOwners(ctx, refs)
	return videos, nil
}

// attachOwners denormalizes the uploader snippet onto each video with one
// users query. Failures only leave Owner nil; listing still succeeds.
func (r *VideoRepository) attachOwners(ctx context.Context, videos []*model.Video) {
	if len(videos) == 0 {
		return
	}
	seen := make(map[bson.ObjectID]struct{}, len(videos))
	ids := make([]bson.ObjectID, 0, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.User]; !ok {
			seen[v.User] = struct{}{}
			ids = append(ids, v.User)
		}
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: owner lookup failed")
		return
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var owners []model.UserSnippet
	if err := cursor.All(ctx, &owners); err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: decoding owners failed")
		return
	}
	byID := make(map[bson.ObjectID]model.UserSnippet, len(owners))
	for _, o := range owners {
		byID[o.ID] = o
	}
	for _, v := range videos {
		if o, ok := byID[v.User]; ok {
			snippet := o
			v.Owner = &snippet
		}
	}
}

func (r *VideoRepository) IncrementCounter(ctx context.Context, id bson.ObjectID, field string) (int64, error) {
	switch field {
	case repository.CounterLikes, repository.CounterDislike, repository.CounterViews:
	default:
		return 0, model.ErrValidation
	}

	var v model.Video
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, model.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	switch field {
	case repository.CounterLikes:
		return v.Likes, nil
	case repository.CounterDislike:
		return v.Dislike, nil
	default:
		return v.Views, nil
	}
}

func (r *VideoRepository) UpdateMetadata(ctx context.Context, id bson.ObjectID, upd dto.UpdateVideoRequest) (model.Video, error) {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Thumbnail != nil {
		set["thumbnail"] = *upd.Thumbnail
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set["updatedAt"] = time.Now().UTC()

	var v model.Video
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Video{}, model.ErrNotFound
	}
	if err != nil {
		return model.Video{}, err
	}
	return v, nil
}

func (r *VideoRepository) AddComment(ctx context.Context, videoID bson.ObjectID, comment model.Comment) error {
	res, err := r.collection.UpdateByID(ctx, videoID, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) UpdateComment(ctx context.Context, videoID, commentID bson.ObjectID, text string) error {
	now := time.Now().UTC()
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": videoID, "comments._id": commentID},
		bson.M{"$set": bson.M{
			"comments.$.text":      text,
			"comments.$.edited":    true,
			"comments.$.updatedAt": now,
			"updatedAt":            now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) DeleteComment(ctx context.Context, videoID, commentID bson.ObjectID) error {
	res, err := r.collection.UpdateByID(ctx, videoID, bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
