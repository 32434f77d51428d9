package keywords

import (
	"context"
	"errors"
	"log/slog"

	"ytinsight/internal/models"
	"ytinsight/internal/youtube"
)

// QuotaChecker reports whether the API key can still make requests.
type QuotaChecker struct {
	connector Connector
	log       *slog.Logger
}

// NewQuotaChecker creates a QuotaChecker.
func NewQuotaChecker(connector Connector, log *slog.Logger) *QuotaChecker {
	if log == nil {
		log = slog.Default()
	}
	return &QuotaChecker{connector: connector, log: log}
}

// Check spends one quota unit. Upstream failures are reported in the
// status, never as an error.
func (q *QuotaChecker) Check(ctx context.Context) models.QuotaStatus {
	session, err := q.connector.Open(ctx)
	if err != nil {
		return models.QuotaStatus{Available: false, Message: "YouTube API is unavailable"}
	}
	defer session.Close()

	err = session.CheckQuota(ctx)
	switch {
	case err == nil:
		return models.QuotaStatus{Available: true, Message: "YouTube API is available"}
	case errors.Is(err, youtube.ErrQuotaExceeded):
		return models.QuotaStatus{Available: false, Message: "YouTube API quota exceeded"}
	default:
		q.log.Warn("quota check failed", slog.Any("error", err))
		return models.QuotaStatus{Available: false, Message: "YouTube API error"}
	}
}
