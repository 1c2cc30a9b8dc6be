package dto

import "vidstream/domain/model"

// SaveHistoryRequest is the POST /history body. Title, thumbnail and
// channelName are only honored for youtube entries; local entries are always
// denormalized from the live video record.
type SaveHistoryRequest struct {
	VideoID     string  `json:"videoId"`
	Platform    string  `json:"platform"`
	Progress    float64 `json:"progress"`
	Duration    float64 `json:"duration"`
	Title       string  `json:"title,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	ChannelName string  `json:"channelName,omitempty"`
}

// HistoryListRequest carries the parsed GET /history query parameters.
type HistoryListRequest struct {
	Page     int
	Limit    int
	Platform string
}

// HistoryItem is one row of the history list response with the derived
// watch percentage attached.
type HistoryItem struct {
	model.HistoryEntry
	WatchPercentage int `json:"watchPercentage"`
}

// NewHistoryItem wraps an entry with its computed percentage.
func NewHistoryItem(e model.HistoryEntry) HistoryItem {
	return HistoryItem{HistoryEntry: e, WatchPercentage: e.WatchPercentage()}
}

// YouTubeMetadata is the payload of the public metadata passthrough.
type YouTubeMetadata struct {
	VideoID     string  `json:"videoId"`
	Title       string  `json:"title"`
	Thumbnail   string  `json:"thumbnail"`
	ChannelName string  `json:"channelName"`
	Duration    float64 `json:"duration"`
}
