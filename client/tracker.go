package client

import (
	"context"
	"sync"
	"time"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/infrastructure/logger"
)

const (
	defaultDebounce = 5 * time.Second
	defaultInterval = 30 * time.Second

	// resumeCutoffPercent withholds the resume point once a video is nearly
	// finished, so a completed video does not "resume" at its own end.
	resumeCutoffPercent = 95
)

// Metadata is the optional snapshot sent along with a progress report.
type Metadata struct {
	Title       string
	Thumbnail   string
	ChannelName string
}

type pendingReport struct {
	timer *time.Timer
	req   dto.SaveHistoryRequest
}

// Tracker buffers playback-progress events and emits at most one network
// write per debounce window per video key. It is owned explicitly by the
// view layer and passed by reference; there is no package-level instance.
//
// History is best-effort: every network failure is logged and discarded, and
// no method ever blocks playback or panics the caller.
type Tracker struct {
	api      *Client
	debounce time.Duration
	interval time.Duration

	mu      sync.Mutex
	pending map[string]*pendingReport // key format "platform:videoId"
}

func NewTracker(api *Client) *Tracker {
	return &Tracker{
		api:      api,
		debounce: defaultDebounce,
		interval: defaultInterval,
		pending:  make(map[string]*pendingReport),
	}
}

// WithDebounce overrides the debounce window. Intended for tests.
func (t *Tracker) WithDebounce(d time.Duration) *Tracker {
	t.debounce = d
	return t
}

// WithInterval overrides the periodic reporting interval.
func (t *Tracker) WithInterval(d time.Duration) *Tracker {
	t.interval = d
	return t
}

// ReportProgress schedules a progress write for the given video. Reports
// below the minimum watch threshold, or without a session credential, are
// dropped. Rapid calls for the same key collapse to the last value within
// the debounce window (trailing debounce).
func (t *Tracker) ReportProgress(videoID, platform string, progress, duration float64, meta Metadata) {
	if progress < model.MinWatchSeconds {
		return
	}
	if !t.api.HasToken() {
		return
	}

	req := dto.SaveHistoryRequest{
		VideoID:     videoID,
		Platform:    platform,
		Progress:    progress,
		Duration:    duration,
		Title:       meta.Title,
		Thumbnail:   meta.Thumbnail,
		ChannelName: meta.ChannelName,
	}
	key := platform + ":" + videoID

	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pendingReport{req: req}
	p.timer = time.AfterFunc(t.debounce, func() { t.fire(key) })
	t.pending[key] = p
}

// fire sends the latest buffered report for key. Failures are swallowed; the
// periodic tracker provides the natural re-attempt.
func (t *Tracker) fire(key string) {
	t.mu.Lock()
	p, ok := t.pending[key]
	if !ok {
		t.mu.Unlock()
		return
	}
	delete(t.pending, key)
	req := p.req
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := t.api.SaveHistory(ctx, req); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":   err,
			"videoId": req.VideoID,
		}).Warn("tracker: history save failed")
	}
}

// Flush cancels all pending scheduled writes without sending them. Called on
// navigation-away; losing the last sub-threshold window is an accepted
// trade-off against delaying navigation.
func (t *Tracker) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, p := range t.pending {
		p.timer.Stop()
		delete(t.pending, key)
	}
}

// Pending reports how many writes are currently scheduled.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// ResumePoint fetches the stored entry and returns a resumable timestamp.
// It returns false when there is no useful resume position: unknown entry,
// too little progress, or the video was already (nearly) finished.
func (t *Tracker) ResumePoint(ctx context.Context, videoID, platform string) (float64, bool) {
	if !t.api.HasToken() {
		return 0, false
	}
	item, err := t.api.GetHistoryItem(ctx, videoID, platform)
	if err != nil {
		if apiErr, ok := err.(*APIError); !ok || apiErr.StatusCode != 404 {
			logger.GetLogger().WithField("error", err).Warn("tracker: resume lookup failed")
		}
		return 0, false
	}
	if item.Progress > model.MinWatchSeconds && item.WatchPercentage < resumeCutoffPercent {
		return item.Progress, true
	}
	return 0, false
}

// StartPeriodic re-reports the current position every interval while playing,
// independent of the debounce path, so long-running playback is captured even
// without pauses. position returns the current progress and duration. The
// returned stop function cancels the loop; ctx cancellation does too.
func (t *Tracker) StartPeriodic(ctx context.Context, videoID, platform string, position func() (progress, duration float64), meta Metadata) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				progress, duration := position()
				t.ReportProgress(videoID, platform, progress, duration, meta)
			}
		}
	}()
	return cancel
}
