package usecase

import (
	"context"
	"fmt"
	"time"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/domain/repository"
	youtubeclient "vidstream/infrastructure/clients/youtube"
	"vidstream/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const metadataCacheTTL = time.Hour

// IHistoryUsecase is the watch-history core: idempotent save, paginated
// listing, single-item resume lookup, deletion, and the public YouTube
// metadata passthrough.
type IHistoryUsecase interface {
	// Save upserts one history row. The returned bool is false when the
	// report was below the minimum watch threshold and nothing was written.
	Save(ctx context.Context, userID bson.ObjectID, req dto.SaveHistoryRequest) (*dto.HistoryItem, bool, error)
	List(ctx context.Context, userID bson.ObjectID, req dto.HistoryListRequest) ([]dto.HistoryItem, dto.Pagination, error)
	GetItem(ctx context.Context, userID bson.ObjectID, videoID, platform string) (dto.HistoryItem, error)
	DeleteItem(ctx context.Context, userID bson.ObjectID, videoID, platform string) error
	Clear(ctx context.Context, userID bson.ObjectID) (int64, error)
	GetYouTubeMetadata(ctx context.Context, videoID string) (dto.YouTubeMetadata, error)
}

type historyUsecase struct {
	historyRepo repository.IHistory
	videoRepo   repository.IVideo
	ytMetadata  repository.IYouTubeMetadata // optional
	metaCache   repository.IMetadataCache
}

func NewHistoryUsecase(historyRepo repository.IHistory, videoRepo repository.IVideo, ytMetadata repository.IYouTubeMetadata, metaCache repository.IMetadataCache) IHistoryUsecase {
	return &historyUsecase{
		historyRepo: historyRepo,
		videoRepo:   videoRepo,
		ytMetadata:  ytMetadata,
		metaCache:   metaCache,
	}
}

func (u *historyUsecase) Save(ctx context.Context, userID bson.ObjectID, req dto.SaveHistoryRequest) (*dto.HistoryItem, bool, error) {
	if req.VideoID == "" || req.Platform == "" {
		return nil, false, fmt.Errorf("%w: videoId and platform are required", model.ErrValidation)
	}
	if !model.ValidPlatform(req.Platform) {
		return nil, false, fmt.Errorf("%w: platform must be %q or %q", model.ErrValidation, model.PlatformLocal, model.PlatformYouTube)
	}

	// Server-side mirror of the client threshold so a direct API caller
	// cannot record sub-threshold views.
	if req.Progress < model.MinWatchSeconds {
		return nil, false, nil
	}

	meta, err := u.resolveMetadata(ctx, req)
	if err != nil {
		return nil, false, err
	}

	entry, err := u.historyRepo.Upsert(ctx, userID, req.VideoID, req.Platform, req.Progress, meta)
	if err != nil {
		return nil, false, err
	}

	if entry.ShouldComplete() && !entry.Completed {
		if err := u.historyRepo.MarkCompleted(ctx, entry.ID); err != nil {
			logger.GetLogger().WithField("error", err).Error("history: marking entry completed failed")
		} else {
			entry.Completed = true
		}
	}

	// Retention is best-effort cleanup. The row is already committed, so a
	// trim failure must not turn the save into an error response.
	if _, err := u.historyRepo.TrimToLimit(ctx, userID, model.HistoryRetentionLimit); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"user":  userID.Hex(),
		}).Error("history: retention trim failed")
	}

	item := dto.NewHistoryItem(entry)
	return &item, true, nil
}

// resolveMetadata denormalizes the snapshot stored on the entry. Local videos
// must still exist; youtube lookups degrade to synthesized defaults because
// watch-history must never be blocked by a third-party outage.
func (u *historyUsecase) resolveMetadata(ctx context.Context, req dto.SaveHistoryRequest) (model.VideoMetadata, error) {
	if req.Platform == model.PlatformLocal {
		videoID, err := bson.ObjectIDFromHex(req.VideoID)
		if err != nil {
			return model.VideoMetadata{}, model.ErrNotFound
		}
		video, err := u.videoRepo.GetByID(ctx, videoID)
		if err != nil {
			return model.VideoMetadata{}, err
		}

		channelName := "Unknown"
		if video.Owner != nil && video.Owner.ChannelName != "" {
			channelName = video.Owner.ChannelName
		}
		uploadedBy := video.User
		return model.VideoMetadata{
			Title:       video.Title,
			Thumbnail:   video.Thumbnail,
			ChannelName: channelName,
			UploadedBy:  &uploadedBy,
			Duration:    req.Duration,
		}, nil
	}

	// Caller-supplied metadata wins when complete.
	if req.Title != "" && req.Thumbnail != "" && req.ChannelName != "" {
		return model.VideoMetadata{
			Title:       req.Title,
			Thumbnail:   req.Thumbnail,
			ChannelName: req.ChannelName,
			Duration:    req.Duration,
		}, nil
	}

	if looked, err := u.lookupYouTube(ctx, req.VideoID); err == nil {
		duration := looked.Duration
		if duration <= 0 {
			duration = req.Duration
		}
		return model.VideoMetadata{
			Title:       looked.Title,
			Thumbnail:   looked.Thumbnail,
			ChannelName: looked.ChannelName,
			Duration:    duration,
		}, nil
	} else {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":   err,
			"videoId": req.VideoID,
		}).Warn("history: youtube metadata lookup failed - using defaults")
	}

	meta := model.VideoMetadata{
		Title:       req.Title,
		Thumbnail:   req.Thumbnail,
		ChannelName: req.ChannelName,
		Duration:    req.Duration,
	}
	if meta.Title == "" {
		meta.Title = "YouTube Video"
	}
	if meta.Thumbnail == "" {
		meta.Thumbnail = youtubeclient.DefaultThumbnail(req.VideoID)
	}
	if meta.ChannelName == "" {
		meta.ChannelName = "Unknown"
	}
	return meta, nil
}

func (u *historyUsecase) lookupYouTube(ctx context.Context, videoID string) (dto.YouTubeMetadata, error) {
	if cached, err := u.metaCache.GetVideo(ctx, videoID); err == nil && cached != nil {
		return *cached, nil
	}
	if u.ytMetadata == nil {
		return dto.YouTubeMetadata{}, fmt.Errorf("youtube metadata client not configured")
	}
	meta, err := u.ytMetadata.GetVideoMetadata(ctx, videoID)
	if err != nil {
		return dto.YouTubeMetadata{}, err
	}
	if err := u.metaCache.SetVideo(ctx, videoID, meta, metadataCacheTTL); err != nil {
		logger.GetLogger().WithField("error", err).Warn("history: caching youtube metadata failed")
	}
	return meta, nil
}

func (u *historyUsecase) List(ctx context.Context, userID bson.ObjectID, req dto.HistoryListRequest) ([]dto.HistoryItem, dto.Pagination, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	platform := ""
	if model.ValidPlatform(req.Platform) {
		platform = req.Platform
	}

	skip := (page - 1) * limit
	entries, total, err := u.historyRepo.List(ctx, userID, platform, skip, limit)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	items := make([]dto.HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.NewHistoryItem(e))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pagination := dto.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasMore:      int64(skip+len(entries)) < total,
	}
	return items, pagination, nil
}

func (u *historyUsecase) GetItem(ctx context.Context, userID bson.ObjectID, videoID, platform string) (dto.HistoryItem, error) {
	if !model.ValidPlatform(platform) {
		return dto.HistoryItem{}, fmt.Errorf("%w: valid platform query parameter is required", model.ErrValidation)
	}
	entry, err := u.historyRepo.GetOne(ctx, userID, videoID, platform)
	if err != nil {
		return dto.HistoryItem{}, err
	}
	return dto.NewHistoryItem(entry), nil
}

func (u *historyUsecase) DeleteItem(ctx context.Context, userID bson.ObjectID, videoID, platform string) error {
	if !model.ValidPlatform(platform) {
		return fmt.Errorf("%w: valid platform query parameter is required", model.ErrValidation)
	}
	return u.historyRepo.DeleteOne(ctx, userID, videoID, platform)
}

func (u *historyUsecase) Clear(ctx context.Context, userID bson.ObjectID) (int64, error) {
	return u.historyRepo.DeleteAll(ctx, userID)
}

func (u *historyUsecase) GetYouTubeMetadata(ctx context.Context, videoID string) (dto.YouTubeMetadata, error) {
	if !youtubeclient.IsValidVideoID(videoID) {
		return dto.YouTubeMetadata{}, fmt.Errorf("%w: invalid YouTube video ID", model.ErrValidation)
	}
	return u.lookupYouTube(ctx, videoID)
}
