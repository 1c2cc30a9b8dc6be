package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchPercentage(t *testing.T) {
	cases := []struct {
		progress, duration float64
		want               int
	}{
		{50, 100, 50},
		{95, 100, 95},
		{100, 100, 100},
		{150, 100, 100}, // clamped
		{33, 99, 33},
		{10, 0, 0}, // live streams report no duration
		{10, -1, 0},
	}
	for _, tc := range cases {
		e := HistoryEntry{Progress: tc.progress, Duration: tc.duration}
		assert.Equal(t, tc.want, e.WatchPercentage(), "progress=%v duration=%v", tc.progress, tc.duration)
	}
}

func TestShouldComplete(t *testing.T) {
	assert.True(t, (&HistoryEntry{Progress: 90, Duration: 100}).ShouldComplete())
	assert.True(t, (&HistoryEntry{Progress: 95, Duration: 100}).ShouldComplete())
	assert.False(t, (&HistoryEntry{Progress: 80, Duration: 100}).ShouldComplete())
	assert.False(t, (&HistoryEntry{Progress: 80, Duration: 0}).ShouldComplete())

	// Completion never reverts even when a later report rewinds.
	assert.True(t, (&HistoryEntry{Progress: 10, Duration: 100, Completed: true}).ShouldComplete())
}

func TestValidPlatform(t *testing.T) {
	assert.True(t, ValidPlatform(PlatformLocal))
	assert.True(t, ValidPlatform(PlatformYouTube))
	assert.False(t, ValidPlatform(""))
	assert.False(t, ValidPlatform("vimeo"))
	assert.False(t, ValidPlatform("Local"))
}
