package models

import "time"

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Error     *string   `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// KeywordAnalyzeRequest is the body of a keyword analysis request.
type KeywordAnalyzeRequest struct {
	Keyword string `json:"keyword"`
}

// CommentAnalyzeRequest is the body of a comment analysis request.
type CommentAnalyzeRequest struct {
	VideoURL string `json:"video_url"`
}
