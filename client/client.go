// Package client is the Go SDK for the vidstream API. It bundles a thin HTTP
// client with the debounced watch-history tracker that player frontends embed.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vidstream/domain/dto"

	"github.com/google/uuid"
)

// Client calls the vidstream REST API. The zero value is not usable; create
// one with NewClient.
type Client struct {
	baseURL    string
	token      string
	deviceID   string
	httpClient *http.Client
}

// NewClient builds an API client. token may be empty for anonymous use; a
// device id is generated so the session can be bound to this client instance.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		deviceID:   uuid.NewString(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken replaces the session token, e.g. after login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// HasToken reports whether a session credential is present.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// DeviceID returns the generated device identifier sent with every request.
func (c *Client) DeviceID() string {
	return c.deviceID
}

type savedHistoryRes struct {
	dto.Res
}

// SaveHistory posts one progress report.
func (c *Client) SaveHistory(ctx context.Context, req dto.SaveHistoryRequest) error {
	var out savedHistoryRes
	return c.do(ctx, http.MethodPost, "/history", nil, req, &out)
}

type historyItemRes struct {
	dto.Res
	Data dto.HistoryItem `json:"data"`
}

// GetHistoryItem fetches the stored entry for one video, for resume playback.
func (c *Client) GetHistoryItem(ctx context.Context, videoID, platform string) (dto.HistoryItem, error) {
	var out historyItemRes
	q := url.Values{"platform": {platform}}
	err := c.do(ctx, http.MethodGet, "/history/video/"+url.PathEscape(videoID), q, nil, &out)
	if err != nil {
		return dto.HistoryItem{}, err
	}
	return out.Data, nil
}

type historyListRes struct {
	dto.Res
	Data       []dto.HistoryItem `json:"data"`
	Pagination dto.Pagination    `json:"pagination"`
}

// GetHistory fetches one page of watch history, newest first.
func (c *Client) GetHistory(ctx context.Context, page, limit int, platform string) ([]dto.HistoryItem, dto.Pagination, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	if platform != "" {
		q.Set("platform", platform)
	}
	var out historyListRes
	if err := c.do(ctx, http.MethodGet, "/history", q, nil, &out); err != nil {
		return nil, dto.Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

// DeleteHistoryItem removes one entry.
func (c *Client) DeleteHistoryItem(ctx context.Context, videoID, platform string) error {
	q := url.Values{"platform": {platform}}
	var out savedHistoryRes
	return c.do(ctx, http.MethodDelete, "/history/"+url.PathEscape(videoID), q, nil, &out)
}

// ClearHistory removes every entry for the authenticated user.
func (c *Client) ClearHistory(ctx context.Context) error {
	var out savedHistoryRes
	return c.do(ctx, http.MethodDelete, "/history", nil, nil, &out)
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Device-ID", c.deviceID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var res dto.Res
		if jsonErr := json.Unmarshal(raw, &res); jsonErr == nil {
			apiErr.Message = res.ResponseMessage
		}
		return apiErr
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}
