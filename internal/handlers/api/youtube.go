package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"ytinsight/internal/keywords"
	"ytinsight/internal/models"
	"ytinsight/internal/validation"
)

// ChannelRanker ranks channels for a search query.
type ChannelRanker interface {
	Rank(ctx context.Context, query string, maxResults, topN int) ([]models.YouTuberRanking, error)
}

// QuotaReporter reports upstream availability.
type QuotaReporter interface {
	Check(ctx context.Context) models.QuotaStatus
}

// YouTubeHandler serves channel ranking and quota status.
type YouTubeHandler struct {
	ranker ChannelRanker
	quota  QuotaReporter
	log    *slog.Logger
}

// NewYouTubeHandler creates a new API YouTube handler.
func NewYouTubeHandler(ranker ChannelRanker, quota QuotaReporter, log *slog.Logger) *YouTubeHandler {
	return &YouTubeHandler{ranker: ranker, quota: quota, log: log}
}

// Ranking handles GET /api/v1/youtube/youtubers/ranking.
func (h *YouTubeHandler) Ranking(c fiber.Ctx) error {
	maxResults, err := validation.IntInRange("max_results", c.Query("max_results"),
		keywords.DefaultRankingResults, keywords.MinRankingResults, keywords.MaxRankingResults)
	if err != nil {
		return fail(c, h.log, err)
	}
	topN, err := validation.IntInRange("top_n", c.Query("top_n"),
		keywords.DefaultRankingTopN, keywords.MinRankingTopN, keywords.MaxRankingTopN)
	if err != nil {
		return fail(c, h.log, err)
	}

	rankings, err := h.ranker.Rank(c.Context(), c.Query("query"), maxResults, topN)
	if err != nil {
		return fail(c, h.log, err)
	}
	return jsonSuccess(c, rankings)
}

// Quota handles GET /api/v1/youtube/quota.
func (h *YouTubeHandler) Quota(c fiber.Ctx) error {
	return jsonSuccess(c, h.quota.Check(c.Context()))
}
