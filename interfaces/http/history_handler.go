package http

import (
	"fmt"
	"net/http"
	"strconv"

	"vidstream/domain/dto"
	"vidstream/infrastructure/logger"
	"vidstream/interfaces/middleware"
	"vidstream/usecase"

	"github.com/gin-gonic/gin"
)

type IHistoryHandler interface {
	Save(ctx *gin.Context)
	List(ctx *gin.Context)
	GetItem(ctx *gin.Context)
	DeleteItem(ctx *gin.Context)
	Clear(ctx *gin.Context)
	GetYouTubeMetadata(ctx *gin.Context)
}

type HistoryHandler struct {
	historyUsecase usecase.IHistoryUsecase
}

func NewHistoryHandler(historyUsecase usecase.IHistoryUsecase) IHistoryHandler {
	return &HistoryHandler{historyUsecase: historyUsecase}
}

// Save handles POST /history.
func (h *HistoryHandler) Save(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	var req dto.SaveHistoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while unmarshal")
		ctx.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: fmt.Sprintf("Invalid request body: %v", err.Error()),
		})
		return
	}

	item, saved, err := h.historyUsecase.Save(ctx.Request.Context(), user.ID, req)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if !saved {
		// Below the minimum watch threshold. Deliberately a 200: the client
		// fire-and-forgets these and a 4xx would just produce log noise.
		ctx.JSON(http.StatusOK, okRes("Video watched for less than 5 seconds, not saved to history", nil))
		return
	}
	ctx.JSON(http.StatusOK, okRes("History saved successfully", item))
}

// List handles GET /history.
func (h *HistoryHandler) List(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	req := dto.HistoryListRequest{
		Platform: ctx.Query("platform"),
	}
	if page, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20")); err == nil {
		req.Limit = limit
	}

	items, pagination, err := h.historyUsecase.List(ctx.Request.Context(), user.ID, req)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PagedRes{
		Res:        okRes("History fetched successfully", items),
		Pagination: pagination,
	})
}

// GetItem handles GET /history/video/:videoId (resume lookup).
func (h *HistoryHandler) GetItem(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	item, err := h.historyUsecase.GetItem(ctx.Request.Context(), user.ID, ctx.Param("videoId"), ctx.Query("platform"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, okRes("History item fetched successfully", item))
}

// DeleteItem handles DELETE /history/:videoId.
func (h *HistoryHandler) DeleteItem(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	if err := h.historyUsecase.DeleteItem(ctx.Request.Context(), user.ID, ctx.Param("videoId"), ctx.Query("platform")); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, okRes("History item deleted successfully", nil))
}

// Clear handles DELETE /history.
func (h *HistoryHandler) Clear(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}

	deleted, err := h.historyUsecase.Clear(ctx.Request.Context(), user.ID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, okRes("History cleared successfully", gin.H{"deletedCount": deleted}))
}

// GetYouTubeMetadata handles GET /history/youtube/metadata/:videoId. Public.
func (h *HistoryHandler) GetYouTubeMetadata(ctx *gin.Context) {
	meta, err := h.historyUsecase.GetYouTubeMetadata(ctx.Request.Context(), ctx.Param("videoId"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, okRes("Metadata fetched successfully", meta))
}
