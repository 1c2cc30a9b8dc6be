package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vidstream/domain/dto"
	"vidstream/domain/model"

	"github.com/stretchr/testify/assert"
)

type captureServer struct {
	mu    sync.Mutex
	saves []dto.SaveHistoryRequest
}

func (s *captureServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/history" {
			var req dto.SaveHistoryRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			s.mu.Lock()
			s.saves = append(s.saves, req)
			s.mu.Unlock()
			_ = json.NewEncoder(w).Encode(dto.Res{ResponseCode: "00", ResponseMessage: "Success"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *captureServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *captureServer) last() dto.SaveHistoryRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves[len(s.saves)-1]
}

func waitForSaves(t *testing.T, s *captureServer, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.count() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d saves, got %d", want, s.count())
}

func TestTrackerDebounceCollapsesRapidReports(t *testing.T) {
	capture := &captureServer{}
	srv := httptest.NewServer(capture.handler())
	defer srv.Close()

	tracker := NewTracker(NewClient(srv.URL, "session-token")).WithDebounce(50 * time.Millisecond)

	for i := 1; i <= 10; i++ {
		tracker.ReportProgress("dQw4w9WgXcQ", model.PlatformYouTube, float64(i*10), 200, Metadata{Title: "Clip"})
	}

	waitForSaves(t, capture, 1)
	// Give any stray extra fires a chance to land before asserting.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, capture.count())
	assert.Equal(t, float64(100), capture.last().Progress)
	assert.Equal(t, "Clip", capture.last().Title)
	assert.Equal(t, 0, tracker.Pending())
}

func TestTrackerDistinctKeysFireIndependently(t *testing.T) {
	capture := &captureServer{}
	srv := httptest.NewServer(capture.handler())
	defer srv.Close()

	tracker := NewTracker(NewClient(srv.URL, "session-token")).WithDebounce(30 * time.Millisecond)

	tracker.ReportProgress("dQw4w9WgXcQ", model.PlatformYouTube, 30, 100, Metadata{})
	tracker.ReportProgress("dQw4w9WgXcQ", model.PlatformLocal, 40, 100, Metadata{})
	assert.Equal(t, 2, tracker.Pending())

	waitForSaves(t, capture, 2)
}

func TestTrackerFlushCancelsWithoutSending(t *testing.T) {
	capture := &captureServer{}
	srv := httptest.NewServer(capture.handler())
	defer srv.Close()

	tracker := NewTracker(NewClient(srv.URL, "session-token")).WithDebounce(50 * time.Millisecond)

	tracker.ReportProgress("dQw4w9WgXcQ", model.PlatformYouTube, 30, 100, Metadata{})
	assert.Equal(t, 1, tracker.Pending())
	tracker.Flush()
	assert.Equal(t, 0, tracker.Pending())

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 0, capture.count())
}

func TestTrackerDropsBelowThreshold(t *testing.T) {
	tracker := NewTracker(NewClient("http://unused", "session-token"))
	tracker.ReportProgress("dQw4w9WgXcQ", model.PlatformYouTube, model.MinWatchSeconds-1, 100, Metadata{})
	assert.Equal(t, 0, tracker.Pending())
}

func TestTrackerDropsWithoutToken(t *testing.T) {
	tracker := NewTracker(NewClient("http://unused", ""))
	tracker.ReportProgress("dQw4w9WgXcQ", model.PlatformYouTube, 30, 100, Metadata{})
	assert.Equal(t, 0, tracker.Pending())
}

func TestTrackerSwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(dto.Res{ResponseCode: "99", ResponseMessage: "boom"})
	}))
	defer srv.Close()

	tracker := NewTracker(NewClient(srv.URL, "session-token")).WithDebounce(20 * time.Millisecond)
	tracker.ReportProgress("dQw4w9WgXcQ", model.PlatformYouTube, 30, 100, Metadata{})

	deadline := time.Now().Add(2 * time.Second)
	for tracker.Pending() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, tracker.Pending())
}

func resumeServer(t *testing.T, entry model.HistoryEntry, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(dto.Res{ResponseCode: "99", ResponseMessage: "not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"response_code":    "00",
			"response_message": "Success",
			"data":             dto.NewHistoryItem(entry),
		})
	}))
}

func TestTrackerResumePoint(t *testing.T) {
	t.Run("midway offers resume", func(t *testing.T) {
		srv := resumeServer(t, model.HistoryEntry{Progress: 50, Duration: 100}, http.StatusOK)
		defer srv.Close()
		tracker := NewTracker(NewClient(srv.URL, "session-token"))

		at, ok := tracker.ResumePoint(context.Background(), "dQw4w9WgXcQ", model.PlatformYouTube)
		assert.True(t, ok)
		assert.Equal(t, float64(50), at)
	})

	t.Run("nearly finished starts over", func(t *testing.T) {
		srv := resumeServer(t, model.HistoryEntry{Progress: 98, Duration: 100}, http.StatusOK)
		defer srv.Close()
		tracker := NewTracker(NewClient(srv.URL, "session-token"))

		_, ok := tracker.ResumePoint(context.Background(), "dQw4w9WgXcQ", model.PlatformYouTube)
		assert.False(t, ok)
	})

	t.Run("too little progress starts over", func(t *testing.T) {
		srv := resumeServer(t, model.HistoryEntry{Progress: 4, Duration: 100}, http.StatusOK)
		defer srv.Close()
		tracker := NewTracker(NewClient(srv.URL, "session-token"))

		_, ok := tracker.ResumePoint(context.Background(), "dQw4w9WgXcQ", model.PlatformYouTube)
		assert.False(t, ok)
	})

	t.Run("no entry starts over", func(t *testing.T) {
		srv := resumeServer(t, model.HistoryEntry{}, http.StatusNotFound)
		defer srv.Close()
		tracker := NewTracker(NewClient(srv.URL, "session-token"))

		_, ok := tracker.ResumePoint(context.Background(), "dQw4w9WgXcQ", model.PlatformYouTube)
		assert.False(t, ok)
	})

	t.Run("no token skips lookup", func(t *testing.T) {
		tracker := NewTracker(NewClient("http://unused", ""))
		_, ok := tracker.ResumePoint(context.Background(), "dQw4w9WgXcQ", model.PlatformYouTube)
		assert.False(t, ok)
	})
}

func TestTrackerStartPeriodic(t *testing.T) {
	capture := &captureServer{}
	srv := httptest.NewServer(capture.handler())
	defer srv.Close()

	tracker := NewTracker(NewClient(srv.URL, "session-token")).
		WithDebounce(10 * time.Millisecond).
		WithInterval(25 * time.Millisecond)

	var mu sync.Mutex
	progress := 30.0
	stop := tracker.StartPeriodic(context.Background(), "dQw4w9WgXcQ", model.PlatformYouTube, func() (float64, float64) {
		mu.Lock()
		defer mu.Unlock()
		progress += 5
		return progress, 600
	}, Metadata{})
	defer stop()

	waitForSaves(t, capture, 2)
	stop()
	assert.Equal(t, model.PlatformYouTube, capture.last().Platform)
}
