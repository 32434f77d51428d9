package youtube

import "time"

// SearchResult is one video returned by a search.
type SearchResult struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

// VideoDetails holds the snippet and statistics of a single video.
type VideoDetails struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ViewCount    uint64    `json:"view_count"`
	LikeCount    uint64    `json:"like_count"`
	CommentCount uint64    `json:"comment_count"`
	Duration     string    `json:"duration"`
	Tags         []string  `json:"tags"`
}

// Comment is a top-level comment thread entry.
type Comment struct {
	CommentID       string    `json:"comment_id"`
	Text            string    `json:"text"`
	AuthorName      string    `json:"author_name"`
	AuthorChannelID string    `json:"author_channel_id"`
	LikeCount       int64     `json:"like_count"`
	PublishedAt     time.Time `json:"published_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	ReplyCount      int64     `json:"reply_count"`
}

// ChannelInfo holds the snippet and statistics of a channel.
type ChannelInfo struct {
	ChannelID       string `json:"channel_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CustomURL       string `json:"custom_url"`
	ThumbnailURL    string `json:"thumbnail_url"`
	SubscriberCount uint64 `json:"subscriber_count"`
	VideoCount      uint64 `json:"video_count"`
	ViewCount       uint64 `json:"view_count"`
}

// Search orderings accepted by the Data API.
const (
	OrderRelevance = "relevance"
	OrderViewCount = "viewCount"
	OrderDate      = "date"
)

// Quota cost of each call, in Data API units.
const (
	costSearch = 100
	costList   = 1
)
