// Package comments collects a video's comments and runs the text analysis
// passes over them.
package comments

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ytinsight/internal/metrics"
	"ytinsight/internal/models"
	"ytinsight/internal/textanalysis"
	"ytinsight/internal/validation"
	"ytinsight/internal/youtube"
)

// MaxComments is how many top-level comments are analyzed per video.
const MaxComments = 100

// Connector opens an upstream session for one collection.
type Connector interface {
	Open(ctx context.Context) (youtube.Session, error)
}

// Collector fetches a video and its comments and analyzes them.
type Collector struct {
	connector Connector
	engine    *textanalysis.Engine
	now       func() time.Time
	log       *slog.Logger
}

// NewCollector creates a Collector.
func NewCollector(connector Connector, engine *textanalysis.Engine, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{connector: connector, engine: engine, now: time.Now, log: log}
}

// Collect analyzes the comments of the video at videoURL.
func (c *Collector) Collect(ctx context.Context, videoURL string) (*models.CommentAnalysisResult, error) {
	videoURL = strings.TrimSpace(videoURL)
	if err := validation.ValidateVideoURL(videoURL); err != nil {
		return nil, err
	}
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}
	defer metrics.ObserveAnalysis("comments", time.Now())

	session, err := c.connector.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	details, err := session.GetVideoDetails(ctx, videoID)
	if err != nil {
		return nil, err
	}

	fetched, err := session.GetVideoComments(ctx, videoID, MaxComments, youtube.OrderRelevance)
	if err != nil {
		return nil, err
	}

	raw := make([]models.RawComment, 0, len(fetched))
	for _, cm := range fetched {
		raw = append(raw, models.RawComment{
			Text:      cm.Text,
			LikeCount: max(cm.LikeCount, 0),
			Author:    cm.AuthorName,
		})
	}

	c.log.Info("analyzing comments",
		slog.String("video_id", videoID),
		slog.Int("comments", len(raw)),
	)

	return &models.CommentAnalysisResult{
		VideoInfo: models.VideoInfo{
			VideoID:      videoID,
			Title:        details.Title,
			ChannelTitle: details.ChannelTitle,
			ViewCount:    details.ViewCount,
			CommentCount: details.CommentCount,
		},
		CommentAnalysis: c.engine.Analyze(raw),
		AnalyzedAt:      c.now().UTC(),
	}, nil
}
