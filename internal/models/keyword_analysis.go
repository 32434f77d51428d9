package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAnalysisTTL is how long a keyword analysis stays fresh in the cache.
const DefaultAnalysisTTL = 7 * 24 * time.Hour

// RelatedKeyword is a keyword suggestion mined from search results.
type RelatedKeyword struct {
	Keyword      string  `json:"keyword"`
	SearchVolume int     `json:"search_volume"`
	Competition  float64 `json:"competition"`
}

// KeywordMetrics holds the heuristic scores for a keyword.
type KeywordMetrics struct {
	SearchVolume        int     `json:"search_volume"`
	Competition         float64 `json:"competition"`
	RecommendationScore float64 `json:"recommendation_score"`
}

// KeywordAnalysis is the persisted, TTL-bounded analysis record.
// There is at most one record per keyword.
type KeywordAnalysis struct {
	ID                  uuid.UUID        `json:"id"`
	Keyword             string           `json:"keyword"`
	SearchVolume        int              `json:"search_volume"`
	Competition         float64          `json:"competition"`
	RecommendationScore float64          `json:"recommendation_score"`
	RelatedKeywords     []RelatedKeyword `json:"related_keywords"`
	AnalyzedAt          time.Time        `json:"analyzed_at"`
	ExpiresAt           time.Time        `json:"expires_at"`
}

// IsExpired reports whether the record is stale at the given instant.
func (a *KeywordAnalysis) IsExpired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

// TTLRemaining returns the time left before expiry, or zero once expired.
func (a *KeywordAnalysis) TTLRemaining(now time.Time) time.Duration {
	if a.IsExpired(now) {
		return 0
	}
	return a.ExpiresAt.Sub(now)
}

// Result converts the stored record into the API result shape.
func (a *KeywordAnalysis) Result() *KeywordAnalysisResult {
	related := a.RelatedKeywords
	if related == nil {
		related = []RelatedKeyword{}
	}
	return &KeywordAnalysisResult{
		Keyword: a.Keyword,
		Metrics: KeywordMetrics{
			SearchVolume:        a.SearchVolume,
			Competition:         a.Competition,
			RecommendationScore: a.RecommendationScore,
		},
		RelatedKeywords: related,
		AnalyzedAt:      a.AnalyzedAt,
	}
}

// KeywordAnalysisResult is returned by keyword analysis.
type KeywordAnalysisResult struct {
	Keyword         string           `json:"keyword"`
	Metrics         KeywordMetrics   `json:"metrics"`
	RelatedKeywords []RelatedKeyword `json:"related_keywords"`
	AnalyzedAt      time.Time        `json:"analyzed_at"`
}
