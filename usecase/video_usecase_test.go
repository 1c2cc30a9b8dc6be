package usecase_test

import (
	"context"
	"testing"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/domain/repository"
	"vidstream/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestVideoGetByID_InvalidHexIsNotFound(t *testing.T) {
	uc := usecase.NewVideoUsecase(new(MockVideoRepository))
	_, err := uc.GetByID(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestVideoIncrementCounter(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	videoID := bson.NewObjectID()
	videoRepo.On("IncrementCounter", mock.Anything, videoID, repository.CounterViews).Return(int64(8), nil)

	uc := usecase.NewVideoUsecase(videoRepo)
	views, err := uc.IncrementCounter(context.Background(), videoID.Hex(), repository.CounterViews)
	assert.NoError(t, err)
	assert.Equal(t, int64(8), views)
}

func TestVideoUpdateMetadata_OwnerOnly(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	ownerID := bson.NewObjectID()
	strangerID := bson.NewObjectID()
	videoID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).Return(model.Video{ID: videoID, User: ownerID}, nil)

	uc := usecase.NewVideoUsecase(videoRepo)
	title := "New title"
	_, err := uc.UpdateMetadata(context.Background(), strangerID, videoID.Hex(), dto.UpdateVideoRequest{Title: &title})
	assert.ErrorIs(t, err, model.ErrForbidden)
	videoRepo.AssertNotCalled(t, "UpdateMetadata", mock.Anything, mock.Anything, mock.Anything)
}

func TestVideoAddComment(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	userID := bson.NewObjectID()
	videoID := bson.NewObjectID()

	videoRepo.On("AddComment", mock.Anything, videoID, mock.MatchedBy(func(c model.Comment) bool {
		return c.User == userID && c.Text == "nice video" && !c.ID.IsZero()
	})).Return(nil)

	uc := usecase.NewVideoUsecase(videoRepo)
	comment, err := uc.AddComment(context.Background(), userID, videoID.Hex(), "nice video")
	assert.NoError(t, err)
	assert.Equal(t, "nice video", comment.Text)
	videoRepo.AssertExpectations(t)
}

func TestVideoUpdateComment_AuthorOnly(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	authorID := bson.NewObjectID()
	strangerID := bson.NewObjectID()
	videoID := bson.NewObjectID()
	commentID := bson.NewObjectID()

	videoRepo.On("GetByID", mock.Anything, videoID).Return(model.Video{
		ID:       videoID,
		Comments: []model.Comment{{ID: commentID, User: authorID, Text: "original"}},
	}, nil)

	uc := usecase.NewVideoUsecase(videoRepo)
	err := uc.UpdateComment(context.Background(), strangerID, videoID.Hex(), commentID.Hex(), "edited")
	assert.ErrorIs(t, err, model.ErrForbidden)

	videoRepo.On("UpdateComment", mock.Anything, videoID, commentID, "edited").Return(nil)
	assert.NoError(t, uc.UpdateComment(context.Background(), authorID, videoID.Hex(), commentID.Hex(), "edited"))
}

func TestVideoDeleteComment(t *testing.T) {
	authorID := bson.NewObjectID()
	ownerID := bson.NewObjectID()
	strangerID := bson.NewObjectID()
	videoID := bson.NewObjectID()
	commentID := bson.NewObjectID()

	video := model.Video{
		ID:       videoID,
		User:     ownerID,
		Comments: []model.Comment{{ID: commentID, User: authorID}},
	}

	t.Run("author may delete", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("GetByID", mock.Anything, videoID).Return(video, nil)
		videoRepo.On("DeleteComment", mock.Anything, videoID, commentID).Return(nil)

		uc := usecase.NewVideoUsecase(videoRepo)
		assert.NoError(t, uc.DeleteComment(context.Background(), authorID, videoID.Hex(), commentID.Hex()))
	})

	t.Run("video owner may delete", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("GetByID", mock.Anything, videoID).Return(video, nil)
		videoRepo.On("DeleteComment", mock.Anything, videoID, commentID).Return(nil)

		uc := usecase.NewVideoUsecase(videoRepo)
		assert.NoError(t, uc.DeleteComment(context.Background(), ownerID, videoID.Hex(), commentID.Hex()))
	})

	t.Run("stranger may not", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("GetByID", mock.Anything, videoID).Return(video, nil)

		uc := usecase.NewVideoUsecase(videoRepo)
		err := uc.DeleteComment(context.Background(), strangerID, videoID.Hex(), commentID.Hex())
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("unknown comment", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("GetByID", mock.Anything, videoID).Return(video, nil)

		uc := usecase.NewVideoUsecase(videoRepo)
		err := uc.DeleteComment(context.Background(), authorID, videoID.Hex(), bson.NewObjectID().Hex())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestVideoGetComments_NilBecomesEmpty(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	videoID := bson.NewObjectID()
	videoRepo.On("GetByID", mock.Anything, videoID).Return(model.Video{ID: videoID}, nil)

	uc := usecase.NewVideoUsecase(videoRepo)
	comments, err := uc.GetComments(context.Background(), videoID.Hex())
	assert.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
