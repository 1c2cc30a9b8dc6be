package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/domain/repository"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// IsValidVideoID reports whether id looks like a YouTube video id.
func IsValidVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}

// DefaultThumbnail is the canonical thumbnail URL used when no thumbnail is
// known for a YouTube video.
func DefaultThumbnail(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", videoID)
}

// MetadataClient looks up video metadata through the YouTube Data API in
// API-key-only (read-only) mode.
type MetadataClient struct {
	service *youtube.Service
}

func NewMetadataClient(ctx context.Context, apiKey string) (repository.IYouTubeMetadata, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key not configured")
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &MetadataClient{service: service}, nil
}

func (c *MetadataClient) GetVideoMetadata(ctx context.Context, videoID string) (dto.YouTubeMetadata, error) {
	resp, err := c.service.Videos.
		List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return dto.YouTubeMetadata{}, fmt.Errorf("youtube videos.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return dto.YouTubeMetadata{}, model.ErrNotFound
	}

	video := resp.Items[0]
	meta := dto.YouTubeMetadata{
		VideoID:     videoID,
		Title:       video.Snippet.Title,
		ChannelName: video.Snippet.ChannelTitle,
		Thumbnail:   DefaultThumbnail(videoID),
	}
	if video.Snippet.Thumbnails != nil && video.Snippet.Thumbnails.High != nil {
		meta.Thumbnail = video.Snippet.Thumbnails.High.Url
	}
	if video.ContentDetails != nil {
		meta.Duration = float64(ParseISODuration(video.ContentDetails.Duration))
	}
	return meta, nil
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts the API's ISO-8601 duration (PT1H2M3S) into
// seconds. Unparseable input yields 0.
func ParseISODuration(iso string) int64 {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	var seconds int64
	if m[1] != "" {
		h, _ := strconv.ParseInt(m[1], 10, 64)
		seconds += h * 3600
	}
	if m[2] != "" {
		min, _ := strconv.ParseInt(m[2], 10, 64)
		seconds += min * 60
	}
	if m[3] != "" {
		s, _ := strconv.ParseInt(m[3], 10, 64)
		seconds += s
	}
	return seconds
}
