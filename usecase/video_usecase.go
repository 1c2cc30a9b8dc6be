package usecase

import (
	"context"
	"fmt"
	"time"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IVideoUsecase interface {
	Upload(ctx context.Context, userID bson.ObjectID, req dto.UploadVideoRequest) (model.Video, error)
	GetAll(ctx context.Context) ([]model.Video, error)
	GetByID(ctx context.Context, id string) (model.Video, error)
	GetByUser(ctx context.Context, userID string) ([]model.Video, error)
	// IncrementCounter applies a single +1 to likes, dislike or views and
	// returns the new value.
	IncrementCounter(ctx context.Context, id, field string) (int64, error)
	UpdateMetadata(ctx context.Context, requester bson.ObjectID, id string, req dto.UpdateVideoRequest) (model.Video, error)
	AddComment(ctx context.Context, userID bson.ObjectID, videoID, text string) (model.Comment, error)
	UpdateComment(ctx context.Context, userID bson.ObjectID, videoID, commentID, text string) error
	DeleteComment(ctx context.Context, userID bson.ObjectID, videoID, commentID string) error
	GetComments(ctx context.Context, videoID string) ([]model.Comment, error)
}

type videoUsecase struct {
	videoRepo repository.IVideo
}

func NewVideoUsecase(videoRepo repository.IVideo) IVideoUsecase {
	return &videoUsecase{videoRepo: videoRepo}
}

func parseObjectID(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, model.ErrNotFound
	}
	return id, nil
}

func (u *videoUsecase) Upload(ctx context.Context, userID bson.ObjectID, req dto.UploadVideoRequest) (model.Video, error) {
	video := model.Video{
		User:        userID,
		Title:       req.Title,
		Description: req.Description,
		VideoLink:   req.VideoLink,
		Thumbnail:   req.Thumbnail,
		Category:    req.Category,
	}
	return u.videoRepo.Create(ctx, video)
}

func (u *videoUsecase) GetAll(ctx context.Context) ([]model.Video, error) {
	return u.videoRepo.GetAll(ctx)
}

func (u *videoUsecase) GetByID(ctx context.Context, id string) (model.Video, error) {
	videoID, err := parseObjectID(id)
	if err != nil {
		return model.Video{}, err
	}
	return u.videoRepo.GetByID(ctx, videoID)
}

func (u *videoUsecase) GetByUser(ctx context.Context, userID string) ([]model.Video, error) {
	ownerID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	return u.videoRepo.GetByUser(ctx, ownerID)
}

func (u *videoUsecase) IncrementCounter(ctx context.Context, id, field string) (int64, error) {
	videoID, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}
	return u.videoRepo.IncrementCounter(ctx, videoID, field)
}

func (u *videoUsecase) UpdateMetadata(ctx context.Context, requester bson.ObjectID, id string, req dto.UpdateVideoRequest) (model.Video, error) {
	videoID, err := parseObjectID(id)
	if err != nil {
		return model.Video{}, err
	}
	video, err := u.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return model.Video{}, err
	}
	if video.User != requester {
		return model.Video{}, fmt.Errorf("%w: only the uploader can edit this video", model.ErrForbidden)
	}
	return u.videoRepo.UpdateMetadata(ctx, videoID, req)
}

func (u *videoUsecase) AddComment(ctx context.Context, userID bson.ObjectID, videoID, text string) (model.Comment, error) {
	vid, err := parseObjectID(videoID)
	if err != nil {
		return model.Comment{}, err
	}

	now := time.Now().UTC()
	comment := model.Comment{
		ID:        bson.NewObjectID(),
		User:      userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.videoRepo.AddComment(ctx, vid, comment); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (u *videoUsecase) UpdateComment(ctx context.Context, userID bson.ObjectID, videoID, commentID, text string) error {
	vid, err := parseObjectID(videoID)
	if err != nil {
		return err
	}
	cid, err := parseObjectID(commentID)
	if err != nil {
		return err
	}

	video, err := u.videoRepo.GetByID(ctx, vid)
	if err != nil {
		return err
	}
	comment := findComment(video.Comments, cid)
	if comment == nil {
		return model.ErrNotFound
	}
	if comment.User != userID {
		return fmt.Errorf("%w: only the author can edit a comment", model.ErrForbidden)
	}
	return u.videoRepo.UpdateComment(ctx, vid, cid, text)
}

func (u *videoUsecase) DeleteComment(ctx context.Context, userID bson.ObjectID, videoID, commentID string) error {
	vid, err := parseObjectID(videoID)
	if err != nil {
		return err
	}
	cid, err := parseObjectID(commentID)
	if err != nil {
		return err
	}

	video, err := u.videoRepo.GetByID(ctx, vid)
	if err != nil {
		return err
	}
	comment := findComment(video.Comments, cid)
	if comment == nil {
		return model.ErrNotFound
	}
	// The comment author and the video owner may both delete.
	if comment.User != userID && video.User != userID {
		return fmt.Errorf("%w: not allowed to delete this comment", model.ErrForbidden)
	}
	return u.videoRepo.DeleteComment(ctx, vid, cid)
}

func (u *videoUsecase) GetComments(ctx context.Context, videoID string) ([]model.Comment, error) {
	video, err := u.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Comments == nil {
		return []model.Comment{}, nil
	}
	return video.Comments, nil
}

func findComment(comments []model.Comment, id bson.ObjectID) *model.Comment {
	for i := range comments {
		if comments[i].ID == id {
			return &comments[i]
		}
	}
	return nil
}
