package keywords

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"ytinsight/internal/metrics"
	"ytinsight/internal/models"
	"ytinsight/internal/validation"
	"ytinsight/internal/youtube"
)

// Ranking bounds.
const (
	MinRankingResults     = 10
	MaxRankingResults     = 50
	DefaultRankingResults = 50
	MinRankingTopN        = 1
	MaxRankingTopN        = 20
	DefaultRankingTopN    = 10
)

// Ranker ranks channels by how their videos perform for a keyword.
type Ranker struct {
	connector Connector
	log       *slog.Logger
}

// NewRanker creates a Ranker.
func NewRanker(connector Connector, log *slog.Logger) *Ranker {
	if log == nil {
		log = slog.Default()
	}
	return &Ranker{connector: connector, log: log}
}

type channelVideos struct {
	id         string
	title      string
	videos     []rankedVideo
	totalViews uint64
}

type rankedVideo struct {
	title string
	views uint64
}

// Rank searches query by view count, groups the detailed videos by channel
// and ranks channels by average views per video.
func (r *Ranker) Rank(ctx context.Context, query string, maxResults, topN int) ([]models.YouTuberRanking, error) {
	query = validation.NormalizeKeyword(query)
	if err := validation.ValidateKeyword(query); err != nil {
		return nil, err
	}
	if maxResults < MinRankingResults || maxResults > MaxRankingResults {
		return nil, validation.Invalid("max_results must be between %d and %d", MinRankingResults, MaxRankingResults)
	}
	if topN < MinRankingTopN || topN > MaxRankingTopN {
		return nil, validation.Invalid("top_n must be between %d and %d", MinRankingTopN, MaxRankingTopN)
	}
	defer metrics.ObserveAnalysis("ranking", time.Now())

	session, err := r.connector.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	videos, err := session.SearchVideos(ctx, query, int64(maxResults), youtube.OrderViewCount)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(videos) == 0 {
		return []models.YouTuberRanking{}, nil
	}

	details, err := collect(ctx, videos, func(ctx context.Context, v youtube.SearchResult) (*youtube.VideoDetails, error) {
		return session.GetVideoDetails(ctx, v.VideoID)
	}, func(v youtube.SearchResult, err error) {
		r.log.Warn("skipping video in ranking", slog.String("video_id", v.VideoID), slog.Any("error", err))
	})
	if err != nil {
		return nil, err
	}
	viewsByVideo := make(map[string]uint64, len(details))
	for _, d := range details {
		viewsByVideo[d.VideoID] = d.ViewCount
	}

	var channels []*channelVideos
	byID := make(map[string]*channelVideos)
	for _, v := range videos {
		ch, ok := byID[v.ChannelID]
		if !ok {
			ch = &channelVideos{id: v.ChannelID, title: v.ChannelTitle}
			byID[v.ChannelID] = ch
			channels = append(channels, ch)
		}
		if views, ok := viewsByVideo[v.VideoID]; ok {
			ch.videos = append(ch.videos, rankedVideo{title: v.Title, views: views})
			ch.totalViews += views
		}
	}

	lookup := channels[:min(len(channels), topN*2)]
	infos, err := collect(ctx, lookup, func(ctx context.Context, ch *channelVideos) (*youtube.ChannelInfo, error) {
		return session.GetChannelInfo(ctx, ch.id)
	}, func(ch *channelVideos, err error) {
		r.log.Warn("skipping channel info in ranking", slog.String("channel_id", ch.id), slog.Any("error", err))
	})
	if err != nil {
		return nil, err
	}
	infoByID := make(map[string]*youtube.ChannelInfo, len(infos))
	for _, info := range infos {
		infoByID[info.ChannelID] = info
	}

	rankings := make([]models.YouTuberRanking, 0, len(channels))
	for _, ch := range channels {
		if len(ch.videos) == 0 {
			continue
		}
		top := ch.videos[0]
		for _, v := range ch.videos[1:] {
			if v.views > top.views {
				top = v
			}
		}
		entry := models.YouTuberRanking{
			ChannelID:            ch.id,
			ChannelTitle:         ch.title,
			VideoCountForKeyword: len(ch.videos),
			AvgViewsPerVideo:     ch.totalViews / uint64(len(ch.videos)),
			TopVideoTitle:        top.title,
			TopVideoViews:        top.views,
		}
		if info, ok := infoByID[ch.id]; ok {
			entry.ThumbnailURL = info.ThumbnailURL
			entry.SubscriberCount = info.SubscriberCount
			entry.TotalViews = info.ViewCount
		}
		rankings = append(rankings, entry)
	}

	slices.SortStableFunc(rankings, func(a, b models.YouTuberRanking) int {
		return cmp.Compare(b.AvgViewsPerVideo, a.AvgViewsPerVideo)
	})
	if len(rankings) > topN {
		rankings = rankings[:topN]
	}
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings, nil
}
