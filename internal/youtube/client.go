package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"ytinsight/internal/metrics"
)

// Config configures a Client.
type Config struct {
	APIKey     string
	Endpoint   string // empty = Google default
	Timeout    time.Duration
	MaxRetries int
	RPS        float64 // 0 = unlimited
	Retry      *RetryConfig
	Transport  http.RoundTripper
}

// Session is the set of upstream lookups available to one logical analysis.
// A session must be closed when the analysis finishes.
type Session interface {
	SearchVideos(ctx context.Context, query string, maxResults int64, order string) ([]SearchResult, error)
	GetVideoDetails(ctx context.Context, videoID string) (*VideoDetails, error)
	GetVideoComments(ctx context.Context, videoID string, maxResults int64, order string) ([]Comment, error)
	GetChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error)
	CheckQuota(ctx context.Context) error
	Close() error
}

// Client wraps the YouTube Data API service. It is safe for concurrent use.
type Client struct {
	service *yt.Service
	limiter *rate.Limiter
	retry   RetryConfig
	log     *slog.Logger
}

// New creates a YouTube Data API client. A missing API key is reported as
// ErrMissingAPIKey.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if log == nil {
		log = slog.Default()
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &transport.APIKey{Key: cfg.APIKey, Transport: base},
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	retry := DefaultRetryConfig
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}
	if cfg.MaxRetries > 0 {
		retry.MaxRetries = cfg.MaxRetries
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}

	return &Client{
		service: service,
		limiter: limiter,
		retry:   retry,
		log:     log,
	}, nil
}

// Open starts a session scoped to one analysis.
func (c *Client) Open(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &session{client: c, opened: time.Now()}, nil
}

type session struct {
	client *Client
	opened time.Time
	units  atomic.Int64
	calls  atomic.Int64

	mu     sync.Mutex
	closed bool
}

// do runs one API call through pacing, retry, classification and metrics.
func do[T any](ctx context.Context, s *session, call string, cost int64, fn func() (T, error)) (T, error) {
	var zero T
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return zero, ErrSessionClosed
	}

	c := s.client
	result, err := retryDo(ctx, c.retry, func() (T, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return zero, err
		}
		s.units.Add(cost)
		s.calls.Add(1)
		metrics.AddQuotaUnits(cost)
		return fn()
	})
	err = classify(call, err)
	metrics.RecordUpstreamRequest(call, outcome(err))
	return result, err
}

// SearchVideos runs a video search. Results without a video id are dropped.
func (s *session) SearchVideos(ctx context.Context, query string, maxResults int64, order string) ([]SearchResult, error) {
	if order == "" {
		order = OrderRelevance
	}
	resp, err := do(ctx, s, "search", costSearch, func() (*yt.SearchListResponse, error) {
		return s.client.service.Search.List([]string{"snippet"}).
			Q(query).
			Type("video").
			MaxResults(maxResults).
			Order(order).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		results = append(results, SearchResult{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelID:    item.Snippet.ChannelId,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  parseTime(item.Snippet.PublishedAt),
			ThumbnailURL: bestThumbnail(item.Snippet.Thumbnails),
		})
	}
	return results, nil
}

// GetVideoDetails fetches snippet, statistics and content details for one video.
func (s *session) GetVideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	resp, err := do(ctx, s, "videos", costList, func() (*yt.VideoListResponse, error) {
		return s.client.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
			Id(videoID).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, ErrNotFound)
	}

	v := resp.Items[0]
	d := &VideoDetails{VideoID: v.Id}
	if v.Snippet != nil {
		d.Title = v.Snippet.Title
		d.Description = v.Snippet.Description
		d.ChannelID = v.Snippet.ChannelId
		d.ChannelTitle = v.Snippet.ChannelTitle
		d.PublishedAt = parseTime(v.Snippet.PublishedAt)
		d.ThumbnailURL = bestThumbnail(v.Snippet.Thumbnails)
		d.Tags = v.Snippet.Tags
	}
	if v.Statistics != nil {
		d.ViewCount = v.Statistics.ViewCount
		d.LikeCount = v.Statistics.LikeCount
		d.CommentCount = v.Statistics.CommentCount
	}
	if v.ContentDetails != nil {
		d.Duration = v.ContentDetails.Duration
	}
	return d, nil
}

// GetVideoComments fetches top-level comments. Comments disabled on the video
// yields an empty list.
func (s *session) GetVideoComments(ctx context.Context, videoID string, maxResults int64, order string) ([]Comment, error) {
	if order == "" {
		order = OrderRelevance
	}
	resp, err := do(ctx, s, "commentThreads", costList, func() (*yt.CommentThreadListResponse, error) {
		return s.client.service.CommentThreads.List([]string{"snippet"}).
			VideoId(videoID).
			MaxResults(maxResults).
			Order(order).
			TextFormat("plainText").
			Context(ctx).
			Do()
	})
	if err != nil {
		if isCommentsDisabled(err) {
			s.client.log.Info("comments disabled", slog.String("video_id", videoID))
			return []Comment{}, nil
		}
		return nil, err
	}

	comments := make([]Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		top := item.Snippet.TopLevelComment
		c := Comment{
			CommentID:   top.Id,
			Text:        top.Snippet.TextDisplay,
			AuthorName:  top.Snippet.AuthorDisplayName,
			LikeCount:   top.Snippet.LikeCount,
			PublishedAt: parseTime(top.Snippet.PublishedAt),
			UpdatedAt:   parseTime(top.Snippet.UpdatedAt),
			ReplyCount:  item.Snippet.TotalReplyCount,
		}
		if c.Text == "" {
			c.Text = top.Snippet.TextOriginal
		}
		if top.Snippet.AuthorChannelId != nil {
			c.AuthorChannelID = top.Snippet.AuthorChannelId.Value
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// GetChannelInfo fetches snippet and statistics for one channel.
func (s *session) GetChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error) {
	resp, err := do(ctx, s, "channels", costList, func() (*yt.ChannelListResponse, error) {
		return s.client.service.Channels.List([]string{"snippet", "statistics"}).
			Id(channelID).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNotFound)
	}

	ch := resp.Items[0]
	info := &ChannelInfo{ChannelID: ch.Id}
	if ch.Snippet != nil {
		info.Title = ch.Snippet.Title
		info.Description = ch.Snippet.Description
		info.CustomURL = ch.Snippet.CustomUrl
		info.ThumbnailURL = bestThumbnail(ch.Snippet.Thumbnails)
	}
	if ch.Statistics != nil {
		info.SubscriberCount = ch.Statistics.SubscriberCount
		info.VideoCount = ch.Statistics.VideoCount
		info.ViewCount = ch.Statistics.ViewCount
	}
	return info, nil
}

// CheckQuota issues the cheapest possible request to see whether the key
// still has quota left.
func (s *session) CheckQuota(ctx context.Context) error {
	_, err := do(ctx, s, "quota", costList, func() (*yt.VideoListResponse, error) {
		return s.client.service.Videos.List([]string{"id"}).
			Chart("mostPopular").
			MaxResults(1).
			Context(ctx).
			Do()
	})
	return err
}

// Close ends the session. Calls made after Close fail with ErrSessionClosed.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.client.log.Debug("youtube session closed",
		slog.Int64("calls", s.calls.Load()),
		slog.Int64("quota_units", s.units.Load()),
		slog.Duration("elapsed", time.Since(s.opened)),
	)
	return nil
}

func isCommentsDisabled(err error) bool {
	return errors.Is(err, errCommentsDisabled)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// bestThumbnail returns the URL of the best available thumbnail
func bestThumbnail(thumbnails *yt.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}

	// Prefer high quality thumbnails
	if thumbnails.High != nil {
		return thumbnails.High.Url
	}
	if thumbnails.Medium != nil {
		return thumbnails.Medium.Url
	}
	if thumbnails.Default != nil {
		return thumbnails.Default.Url
	}
	return ""
}
