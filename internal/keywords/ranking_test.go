package keywords

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytinsight/internal/models"
	"ytinsight/internal/validation"
	"ytinsight/internal/youtube"
)

func rankingSession() *fakeSession {
	return &fakeSession{
		results: []youtube.SearchResult{
			{VideoID: "v1", Title: "A top", ChannelID: "chA", ChannelTitle: "Channel A"},
			{VideoID: "v2", Title: "B top", ChannelID: "chB", ChannelTitle: "Channel B"},
			{VideoID: "v3", Title: "A second", ChannelID: "chA", ChannelTitle: "Channel A"},
			{VideoID: "v4", Title: "C only", ChannelID: "chC", ChannelTitle: "Channel C"},
			{VideoID: "v5", Title: "B second", ChannelID: "chB", ChannelTitle: "Channel B"},
		},
		details: map[string]*youtube.VideoDetails{
			"v1": {VideoID: "v1", ViewCount: 1000},
			"v2": {VideoID: "v2", ViewCount: 900},
			"v3": {VideoID: "v3", ViewCount: 200},
			"v5": {VideoID: "v5", ViewCount: 300},
		},
		detailErrs: map[string]error{"v4": errors.New("boom")},
		channels: map[string]*youtube.ChannelInfo{
			"chA": {ChannelID: "chA", SubscriberCount: 100, ViewCount: 5000, ThumbnailURL: "a.jpg"},
		},
	}
}

func TestRank(t *testing.T) {
	session := rankingSession()
	r := NewRanker(&fakeConnector{session: session}, nil)

	got, err := r.Rank(context.Background(), "golang", 50, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, models.YouTuberRanking{
		Rank:                 1,
		ChannelID:            "chA",
		ChannelTitle:         "Channel A",
		ThumbnailURL:         "a.jpg",
		SubscriberCount:      100,
		TotalViews:           5000,
		VideoCountForKeyword: 2,
		AvgViewsPerVideo:     600,
		TopVideoTitle:        "A top",
		TopVideoViews:        1000,
	}, got[0])

	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, "chB", got[1].ChannelID)
	assert.Equal(t, uint64(0), got[1].SubscriberCount)
	assert.Equal(t, "", got[1].ThumbnailURL)
	assert.Equal(t, "B top", got[1].TopVideoTitle)

	assert.Equal(t, 3, session.channelCalls)
	assert.True(t, session.closed)
}

func TestRankTopN(t *testing.T) {
	session := rankingSession()
	got, err := NewRanker(&fakeConnector{session: session}, nil).Rank(context.Background(), "golang", 10, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "chA", got[0].ChannelID)
	assert.Equal(t, 2, session.channelCalls)
}

func TestRankNoResults(t *testing.T) {
	got, err := NewRanker(&fakeConnector{session: &fakeSession{}}, nil).Rank(context.Background(), "golang", 50, 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankValidation(t *testing.T) {
	r := NewRanker(&fakeConnector{session: rankingSession()}, nil)
	tests := []struct {
		name       string
		query      string
		maxResults int
		topN       int
	}{
		{"empty query", " ", 50, 10},
		{"too few results", "go", 9, 10},
		{"too many results", "go", 51, 10},
		{"top_n zero", "go", 50, 0},
		{"top_n too large", "go", 50, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Rank(context.Background(), tt.query, tt.maxResults, tt.topN)
			assert.ErrorIs(t, err, validation.ErrInvalidInput)
		})
	}
}

func TestRankSearchError(t *testing.T) {
	session := &fakeSession{searchErr: youtube.ErrQuotaExceeded}
	_, err := NewRanker(&fakeConnector{session: session}, nil).Rank(context.Background(), "golang", 50, 10)
	assert.ErrorIs(t, err, youtube.ErrQuotaExceeded)
}

func TestQuotaChecker(t *testing.T) {
	tests := []struct {
		name      string
		conn      *fakeConnector
		available bool
		message   string
	}{
		{"available", &fakeConnector{session: &fakeSession{}}, true, "YouTube API is available"},
		{"exhausted", &fakeConnector{session: &fakeSession{quotaErr: youtube.ErrQuotaExceeded}}, false, "YouTube API quota exceeded"},
		{"upstream error", &fakeConnector{session: &fakeSession{quotaErr: youtube.ErrUpstream}}, false, "YouTube API error"},
		{"cannot connect", &fakeConnector{err: errors.New("dial")}, false, "YouTube API is unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewQuotaChecker(tt.conn, nil).Check(context.Background())
			assert.Equal(t, tt.available, got.Available)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}
