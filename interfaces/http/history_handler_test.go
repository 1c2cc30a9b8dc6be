package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	vhttp "vidstream/interfaces/http"
	"vidstream/interfaces/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MockHistoryUsecase struct {
	mock.Mock
}

func (m *MockHistoryUsecase) Save(ctx context.Context, userID bson.ObjectID, req dto.SaveHistoryRequest) (*dto.HistoryItem, bool, error) {
	args := m.Called(ctx, userID, req)
	var item *dto.HistoryItem
	if args.Get(0) != nil {
		item = args.Get(0).(*dto.HistoryItem)
	}
	return item, args.Bool(1), args.Error(2)
}

func (m *MockHistoryUsecase) List(ctx context.Context, userID bson.ObjectID, req dto.HistoryListRequest) ([]dto.HistoryItem, dto.Pagination, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).([]dto.HistoryItem), args.Get(1).(dto.Pagination), args.Error(2)
}

func (m *MockHistoryUsecase) GetItem(ctx context.Context, userID bson.ObjectID, videoID, platform string) (dto.HistoryItem, error) {
	args := m.Called(ctx, userID, videoID, platform)
	return args.Get(0).(dto.HistoryItem), args.Error(1)
}

func (m *MockHistoryUsecase) DeleteItem(ctx context.Context, userID bson.ObjectID, videoID, platform string) error {
	args := m.Called(ctx, userID, videoID, platform)
	return args.Error(0)
}

func (m *MockHistoryUsecase) Clear(ctx context.Context, userID bson.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryUsecase) GetYouTubeMetadata(ctx context.Context, videoID string) (dto.YouTubeMetadata, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(dto.YouTubeMetadata), args.Error(1)
}

// historyRouter wires the handler behind a stub auth layer that injects the
// given user, mirroring what the real middleware does after token checks.
func historyRouter(uc *MockHistoryUsecase, user model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := vhttp.NewHistoryHandler(uc)

	r := gin.New()
	inject := func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserKey, user)
		ctx.Next()
	}
	r.POST("/history", inject, handler.Save)
	r.GET("/history", inject, handler.List)
	r.GET("/history/video/:videoId", inject, handler.GetItem)
	r.DELETE("/history/:videoId", inject, handler.DeleteItem)
	r.DELETE("/history", inject, handler.Clear)
	r.GET("/history/youtube/metadata/:videoId", handler.GetYouTubeMetadata)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSaveHistoryHandler(t *testing.T) {
	user := model.User{ID: bson.NewObjectID()}

	t.Run("saved", func(t *testing.T) {
		uc := new(MockHistoryUsecase)
		item := dto.NewHistoryItem(model.HistoryEntry{
			VideoID: "dQw4w9WgXcQ", Platform: model.PlatformYouTube,
			Progress: 50, Duration: 100, WatchCount: 3,
		})
		uc.On("Save", mock.Anything, user.ID, mock.Anything).Return(&item, true, nil)

		w := postJSON(historyRouter(uc, user), "/history", dto.SaveHistoryRequest{
			VideoID: "dQw4w9WgXcQ", Platform: model.PlatformYouTube, Progress: 50, Duration: 100,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "History saved successfully")
		assert.Contains(t, w.Body.String(), `"watchPercentage":50`)
	})

	t.Run("below threshold still 200", func(t *testing.T) {
		uc := new(MockHistoryUsecase)
		uc.On("Save", mock.Anything, user.ID, mock.Anything).Return(nil, false, nil)

		w := postJSON(historyRouter(uc, user), "/history", dto.SaveHistoryRequest{
			VideoID: "dQw4w9WgXcQ", Platform: model.PlatformYouTube, Progress: 3, Duration: 100,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "less than 5 seconds")
	})

	t.Run("malformed body", func(t *testing.T) {
		uc := new(MockHistoryUsecase)
		r := historyRouter(uc, user)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/history", bytes.NewReader([]byte("{not json")))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		uc := new(MockHistoryUsecase)
		uc.On("Save", mock.Anything, user.ID, mock.Anything).
			Return(nil, false, fmt.Errorf("%w: platform must be valid", model.ErrValidation))

		w := postJSON(historyRouter(uc, user), "/history", dto.SaveHistoryRequest{VideoID: "x", Platform: "vimeo"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("local video gone maps to 404", func(t *testing.T) {
		uc := new(MockHistoryUsecase)
		uc.On("Save", mock.Anything, user.ID, mock.Anything).Return(nil, false, model.ErrNotFound)

		w := postJSON(historyRouter(uc, user), "/history", dto.SaveHistoryRequest{
			VideoID: bson.NewObjectID().Hex(), Platform: model.PlatformLocal, Progress: 30, Duration: 100,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("duplicate race maps to 409", func(t *testing.T) {
		uc := new(MockHistoryUsecase)
		uc.On("Save", mock.Anything, user.ID, mock.Anything).Return(nil, false, model.ErrConflict)

		w := postJSON(historyRouter(uc, user), "/history", dto.SaveHistoryRequest{
			VideoID: "dQw4w9WgXcQ", Platform: model.PlatformYouTube, Progress: 30, Duration: 100,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestListHistoryHandler(t *testing.T) {
	user := model.User{ID: bson.NewObjectID()}
	uc := new(MockHistoryUsecase)
	uc.On("List", mock.Anything, user.ID, dto.HistoryListRequest{Page: 2, Limit: 10, Platform: "youtube"}).
		Return([]dto.HistoryItem{}, dto.Pagination{CurrentPage: 2, TotalPages: 5, TotalItems: 42, ItemsPerPage: 10, HasMore: true}, nil)

	r := historyRouter(uc, user)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history?page=2&limit=10&platform=youtube", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res dto.PagedRes
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Pagination.CurrentPage)
	assert.True(t, res.Pagination.HasMore)
	uc.AssertExpectations(t)
}

func TestGetHistoryItemHandler(t *testing.T) {
	user := model.User{ID: bson.NewObjectID()}

	t.Run("found", func(t *testing.T) {
		uc := new(MockHistoryUsecase)
		uc.On("GetItem", mock.Anything, user.ID, "dQw4w9WgXcQ", "youtube").
			Return(dto.NewHistoryItem(model.HistoryEntry{VideoID: "dQw4w9WgXcQ", Progress: 50, Duration: 100}), nil)

		r := historyRouter(uc, user)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/history/video/dQw4w9WgXcQ?platform=youtube", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing is 404", func(t *testing.T) {
		uc := new(MockHistoryUsecase)
		uc.On("GetItem", mock.Anything, user.ID, "dQw4w9WgXcQ", "youtube").
			Return(dto.HistoryItem{}, model.ErrNotFound)

		r := historyRouter(uc, user)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/history/video/dQw4w9WgXcQ?platform=youtube", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestClearHistoryHandler(t *testing.T) {
	user := model.User{ID: bson.NewObjectID()}
	uc := new(MockHistoryUsecase)
	uc.On("Clear", mock.Anything, user.ID).Return(int64(7), nil)

	r := historyRouter(uc, user)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/history", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deletedCount":7`)
}

func TestYouTubeMetadataHandlerIsPublic(t *testing.T) {
	uc := new(MockHistoryUsecase)
	uc.On("GetYouTubeMetadata", mock.Anything, "dQw4w9WgXcQ").
		Return(dto.YouTubeMetadata{VideoID: "dQw4w9WgXcQ", Title: "Clip"}, nil)

	r := historyRouter(uc, model.User{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history/youtube/metadata/dQw4w9WgXcQ", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Clip")
}
