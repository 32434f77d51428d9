package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrAnalysisNotFound is returned on a cache miss by every store.
	ErrAnalysisNotFound = errors.New("keyword analysis not found")
)
