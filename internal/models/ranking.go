package models

// YouTuberRanking ranks a channel by how its videos perform for a keyword.
type YouTuberRanking struct {
	Rank                 int    `json:"rank"`
	ChannelID            string `json:"channel_id"`
	ChannelTitle         string `json:"channel_title"`
	ThumbnailURL         string `json:"thumbnail_url"`
	SubscriberCount      uint64 `json:"subscriber_count"`
	TotalViews           uint64 `json:"total_views"`
	VideoCountForKeyword int    `json:"video_count_for_keyword"`
	AvgViewsPerVideo     uint64 `json:"avg_views_per_video"`
	TopVideoTitle        string `json:"top_video_title"`
	TopVideoViews        uint64 `json:"top_video_views"`
}

// QuotaStatus reports whether the upstream API currently accepts requests.
type QuotaStatus struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
