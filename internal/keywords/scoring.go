package keywords

import (
	"context"
	"log/slog"
	"math"
	"time"

	"ytinsight/internal/youtube"
)

const (
	maxSearchResults         = 50
	topVideosForCompetition  = 10
	maxEstimatedVolume       = 100000
	volumePerResult          = 20
	volumePerRecentResult    = 50
	recentDays               = 30
	viewsPerDayCap           = 10000.0
	subscriberCap            = 1_000_000.0
	engagementCap            = 0.1
	defaultCompetition       = 0.5
	recommendationVolumeNorm = 50000.0
)

// EstimateSearchVolume derives a search volume from the result count with a
// bonus for videos at most 30 whole days old.
func EstimateSearchVolume(results []youtube.SearchResult, now time.Time) int {
	if len(results) == 0 {
		return 0
	}
	recent := 0
	for _, r := range results {
		if !r.PublishedAt.IsZero() && int(now.Sub(r.PublishedAt).Hours()/24) <= recentDays {
			recent++
		}
	}
	return min(len(results)*volumePerResult+recent*volumePerRecentResult, maxEstimatedVolume)
}

// RecommendationScore favors high volume and low competition.
func RecommendationScore(volume int, competition float64) float64 {
	normalized := math.Min(float64(volume)/recommendationVolumeNorm, 1)
	return round2(clamp01(0.4*normalized + 0.6*(1-competition)))
}

// VideoScore scores one incumbent video. Higher means harder to compete with.
func VideoScore(views, likes, subscribers uint64, published, now time.Time) float64 {
	ageDays := 1
	if !published.IsZero() {
		ageDays = max(1, int(now.Sub(published).Hours()/24))
	}
	viewsPerDay := float64(views) / float64(ageDays)

	viewsNorm := math.Min(viewsPerDay/viewsPerDayCap, 1)
	subsNorm := math.Min(float64(subscribers)/subscriberCap, 1)
	engagement := 0.0
	if views > 0 {
		engagement = math.Min(float64(likes)/float64(views), engagementCap) * 10
	}
	return 0.5*viewsNorm + 0.3*subsNorm + 0.2*engagement
}

// competition averages VideoScore over the top results. Videos whose lookups
// fail are skipped. With results but no scored video it falls back to 0.5.
func (a *Analyzer) competition(ctx context.Context, session youtube.Session, results []youtube.SearchResult, now time.Time) (float64, error) {
	if len(results) == 0 {
		return 0, nil
	}
	top := results[:min(len(results), topVideosForCompetition)]

	scores, err := collect(ctx, top, func(ctx context.Context, r youtube.SearchResult) (float64, error) {
		return a.scoreVideo(ctx, session, r, now)
	}, func(r youtube.SearchResult, err error) {
		a.log.Warn("skipping video in competition score",
			slog.String("video_id", r.VideoID), slog.Any("error", err))
	})
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return defaultCompetition, nil
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return round2(clamp01(sum / float64(len(scores)))), nil
}

func (a *Analyzer) scoreVideo(ctx context.Context, session youtube.Session, r youtube.SearchResult, now time.Time) (float64, error) {
	details, err := session.GetVideoDetails(ctx, r.VideoID)
	if err != nil {
		return 0, err
	}

	channelID := details.ChannelID
	if channelID == "" {
		channelID = r.ChannelID
	}
	var subscribers uint64
	if channelID != "" {
		info, err := session.GetChannelInfo(ctx, channelID)
		switch {
		case err == nil:
			subscribers = info.SubscriberCount
		case ctx.Err() != nil:
			return 0, ctx.Err()
		default:
			a.log.Warn("channel lookup failed, assuming no subscribers",
				slog.String("channel_id", channelID), slog.Any("error", err))
		}
	}

	published := details.PublishedAt
	if published.IsZero() {
		published = r.PublishedAt
	}
	return VideoScore(details.ViewCount, details.LikeCount, subscribers, published, now), nil
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
