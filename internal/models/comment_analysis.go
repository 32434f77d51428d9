package models

import "time"

// VideoInfo is a snapshot of the analyzed video.
type VideoInfo struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	ViewCount    uint64 `json:"view_count"`
	CommentCount uint64 `json:"comment_count"`
}

// RawComment is a single top-level comment as fetched from upstream.
type RawComment struct {
	Text      string `json:"text"`
	LikeCount int64  `json:"like_count"`
	Author    string `json:"author"`
}

// FrequentWord is a word and how often it appears across all comments.
type FrequentWord struct {
	Word       string  `json:"word"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// HighlightedComment is a comment surfaced as a request, question or top comment.
type HighlightedComment struct {
	Text      string `json:"text"`
	LikeCount int64  `json:"like_count"`
	Author    string `json:"author"`
}

// Named variants keep the result schema self-describing.
type (
	ViewerRequest  = HighlightedComment
	ViewerQuestion = HighlightedComment
	TopComment     = HighlightedComment
)

// SentimentResult holds comment sentiment ratios.
type SentimentResult struct {
	Positive      float64 `json:"positive"`
	Neutral       float64 `json:"neutral"`
	Negative      float64 `json:"negative"`
	TotalAnalyzed int     `json:"total_analyzed"`
}

// CommentAnalysis is the output of the text analysis passes.
type CommentAnalysis struct {
	FrequentWords   []FrequentWord   `json:"frequent_words"`
	ViewerRequests  []ViewerRequest  `json:"viewer_requests"`
	ViewerQuestions []ViewerQuestion `json:"viewer_questions"`
	TopComments     []TopComment     `json:"top_comments"`
	Sentiment       SentimentResult  `json:"sentiment"`
}

// CommentAnalysisResult is returned by comment analysis.
type CommentAnalysisResult struct {
	VideoInfo VideoInfo `json:"video_info"`
	CommentAnalysis
	AnalyzedAt time.Time `json:"analyzed_at"`
}
