package keywords

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ytinsight/internal/youtube"
)

func TestEstimateSearchVolume(t *testing.T) {
	results := func(total, recent int) []youtube.SearchResult {
		out := make([]youtube.SearchResult, total)
		for i := range out {
			out[i].VideoID = fmt.Sprint(i)
			if i < recent {
				out[i].PublishedAt = testNow.Add(-24 * time.Hour)
			} else {
				out[i].PublishedAt = testNow.AddDate(0, -6, 0)
			}
		}
		return out
	}

	tests := []struct {
		name    string
		results []youtube.SearchResult
		want    int
	}{
		{"no results", nil, 0},
		{"no recent", results(50, 0), 1000},
		{"some recent", results(50, 10), 1500},
		{"capped", results(5000, 5000), 100000},
		{"unknown publish date is not recent", []youtube.SearchResult{{VideoID: "x"}}, 20},
		{"30 whole days old is recent", []youtube.SearchResult{{VideoID: "x", PublishedAt: testNow.Add(-(30*24 + 12) * time.Hour)}}, 70},
		{"31 whole days old is not recent", []youtube.SearchResult{{VideoID: "x", PublishedAt: testNow.Add(-31 * 24 * time.Hour)}}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateSearchVolume(tt.results, testNow))
		})
	}
}

func TestRecommendationScore(t *testing.T) {
	tests := []struct {
		volume      int
		competition float64
		want        float64
	}{
		{50000, 0.2, 0.88},
		{25000, 0.5, 0.5},
		{200000, 0.0, 1.0},
		{0, 1.0, 0.0},
		{0, 0.0, 0.6},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%.2f", tt.volume, tt.competition), func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendationScore(tt.volume, tt.competition))
		})
	}
}

func TestVideoScore(t *testing.T) {
	published := testNow.Add(-10 * 24 * time.Hour)

	got := VideoScore(1_000_000, 50_000, 500_000, published, testNow)
	assert.InDelta(t, 0.75, got, 1e-9)

	// Engagement is capped at a 10% like ratio.
	got = VideoScore(1_000_000, 900_000, 2_000_000, published, testNow)
	assert.InDelta(t, 1.0, got, 1e-9)

	// Zero views contributes no engagement.
	assert.Equal(t, 0.0, VideoScore(0, 0, 0, published, testNow))

	// Videos younger than a day count as one day old.
	got = VideoScore(5000, 0, 0, testNow.Add(-time.Hour), testNow)
	assert.InDelta(t, 0.25, got, 1e-9)
}
