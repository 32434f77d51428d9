package jobs

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPurgeInterval is used when no positive interval is configured.
const DefaultPurgeInterval = time.Hour

// ExpiredPurger deletes analyses whose TTL has elapsed.
type ExpiredPurger interface {
	DeleteExpiredKeywordAnalyses(ctx context.Context, now time.Time) (int64, error)
}

// CacheJanitor periodically removes expired keyword analyses from the
// persistent store. Reads never depend on it; expired rows are treated as
// misses regardless.
type CacheJanitor struct {
	store    ExpiredPurger
	interval time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewCacheJanitor creates a new janitor. A non-positive interval falls back
// to DefaultPurgeInterval.
func NewCacheJanitor(store ExpiredPurger, interval time.Duration, log *slog.Logger) *CacheJanitor {
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		log.Warn("cache janitor: invalid purge interval, using default",
			slog.Duration("interval", interval), slog.Duration("default", DefaultPurgeInterval))
		interval = DefaultPurgeInterval
	}
	return &CacheJanitor{store: store, interval: interval, now: time.Now, log: log}
}

// Start runs the purge loop until ctx is canceled.
func (j *CacheJanitor) Start(ctx context.Context) {
	j.log.Info("cache janitor started", slog.Duration("interval", j.interval))

	// Run immediately on start
	j.PurgeOnce(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("cache janitor stopped")
			return
		case <-ticker.C:
			j.PurgeOnce(ctx)
		}
	}
}

// PurgeOnce deletes every expired analysis and returns how many rows went.
func (j *CacheJanitor) PurgeOnce(ctx context.Context) int64 {
	n, err := j.store.DeleteExpiredKeywordAnalyses(ctx, j.now().UTC())
	if err != nil {
		if ctx.Err() == nil {
			j.log.Error("cache janitor: purge failed", slog.Any("error", err))
		}
		return 0
	}
	if n > 0 {
		j.log.Info("cache janitor: purged expired analyses", slog.Int64("count", n))
	}
	return n
}
