package http

import (
	"fmt"
	"net/http"

	"vidstream/domain/dto"
	"vidstream/domain/repository"
	"vidstream/infrastructure/logger"
	"vidstream/interfaces/middleware"
	"vidstream/usecase"

	"github.com/gin-gonic/gin"
)

type IVideoHandler interface {
	Upload(c *gin.Context)
	GetAllVideos(c *gin.Context)
	GetVideoByID(c *gin.Context)
	GetVideosByUser(c *gin.Context)
	Like(c *gin.Context)
	Dislike(c *gin.Context)
	View(c *gin.Context)
	UpdateVideo(c *gin.Context)
	AddComment(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
	GetComments(c *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase}
}

func (h *VideoHandler) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	var req dto.UploadVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()),
		})
		return
	}

	video, err := h.videoUsecase.Upload(c.Request.Context(), user.ID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Res{
		ResponseCode:    "201",
		ResponseMessage: "Video uploaded successfully",
		Data:            video,
	})
}

func (h *VideoHandler) GetAllVideos(c *gin.Context) {
	videos, err := h.videoUsecase.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Videos fetched successfully", videos))
}

func (h *VideoHandler) GetVideoByID(c *gin.Context) {
	video, err := h.videoUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Video fetched successfully", video))
}

func (h *VideoHandler) GetVideosByUser(c *gin.Context) {
	videos, err := h.videoUsecase.GetByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Videos fetched successfully", videos))
}

func (h *VideoHandler) Like(c *gin.Context) {
	h.increment(c, repository.CounterLikes, "Like added successfully")
}

func (h *VideoHandler) Dislike(c *gin.Context) {
	h.increment(c, repository.CounterDislike, "Dislike added successfully")
}

func (h *VideoHandler) View(c *gin.Context) {
	h.increment(c, repository.CounterViews, "Views updated successfully")
}

func (h *VideoHandler) increment(c *gin.Context, field, message string) {
	value, err := h.videoUsecase.IncrementCounter(c.Request.Context(), c.Param("id"), field)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes(message, gin.H{field: value}))
}

func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	var req dto.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()),
		})
		return
	}

	video, err := h.videoUsecase.UpdateMetadata(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Video updated successfully", video))
}

func (h *VideoHandler) AddComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()),
		})
		return
	}

	comment, err := h.videoUsecase.AddComment(c.Request.Context(), user.ID, c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Res{
		ResponseCode:    "201",
		ResponseMessage: "Comment added successfully",
		Data:            comment,
	})
}

func (h *VideoHandler) UpdateComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()),
		})
		return
	}

	if err := h.videoUsecase.UpdateComment(c.Request.Context(), user.ID, c.Param("id"), c.Param("commentId"), req.Text); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Comment updated successfully", nil))
}

func (h *VideoHandler) DeleteComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	if err := h.videoUsecase.DeleteComment(c.Request.Context(), user.ID, c.Param("id"), c.Param("commentId")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Comment deleted successfully", nil))
}

func (h *VideoHandler) GetComments(c *gin.Context) {
	comments, err := h.videoUsecase.GetComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Comments fetched successfully", comments))
}
