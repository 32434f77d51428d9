package models

import "time"

// Keyword analysis lookup outcome constants
const (
	OutcomeCacheHit = "cache_hit"
	OutcomeAnalyzed = "analyzed"
	OutcomeFailed   = "failed"
)

// KeywordLookup represents a per-keyword analysis count by outcome.
type KeywordLookup struct {
	Keyword    string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
