// Package cache layers an in-process LRU and an optional shared Redis tier
// over the persistent analysis store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gofiber/storage/redis/v3"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"ytinsight/internal/db"
	"ytinsight/internal/metrics"
	"ytinsight/internal/models"
)

const keyPrefix = "ytinsight:analysis:"

// Store is the persistent tier.
type Store interface {
	GetKeywordAnalysis(ctx context.Context, keyword string) (*models.KeywordAnalysis, error)
	UpsertKeywordAnalysis(ctx context.Context, a *models.KeywordAnalysis) error
}

// Remote is the shared L2 tier. *redis.Storage satisfies it.
type Remote interface {
	GetWithContext(ctx context.Context, key string) ([]byte, error)
	SetWithContext(ctx context.Context, key string, val []byte, exp time.Duration) error
}

// Tiered reads L1, then L2, then the store, backfilling the upper tiers
// with whatever TTL the record has left. Writes go store first.
type Tiered struct {
	l1    *expirable.LRU[string, models.KeywordAnalysis]
	l2    Remote // nil disables L2
	store Store
	now   func() time.Time
	log   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Config configures a Tiered cache.
type Config struct {
	L1Size int
	L1TTL  time.Duration // upper bound on how long L1 trusts an entry
	L2     Remote
	Logger *slog.Logger
}

// NewTiered wraps store.
func NewTiered(store Store, cfg Config) *Tiered {
	size := cfg.L1Size
	if size <= 0 {
		size = 1024
	}
	ttl := cfg.L1TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Tiered{
		l1:    expirable.NewLRU[string, models.KeywordAnalysis](size, nil, ttl),
		l2:    cfg.L2,
		store: store,
		now:   time.Now,
		log:   log,
	}
}

// ConnectRedis opens the shared L2 tier. The driver panics when the server
// is unreachable, so that is turned into an error.
func ConnectRedis(url string) (s *redis.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("redis: %v", r)
		}
	}()
	return redis.New(redis.Config{URL: url}), nil
}

// GetKeywordAnalysis returns the freshest record any tier holds. Misses in
// every tier return db.ErrAnalysisNotFound. An expired record from the store
// is still returned so the caller can decide what to do with it.
func (t *Tiered) GetKeywordAnalysis(ctx context.Context, keyword string) (*models.KeywordAnalysis, error) {
	now := t.now()

	if a, ok := t.l1.Get(keyword); ok {
		if !a.IsExpired(now) {
			t.hit("l1")
			return &a, nil
		}
		t.l1.Remove(keyword)
	}
	metrics.RecordCacheRequest("l1", false)

	if a, ok := t.getL2(ctx, keyword, now); ok {
		t.l1.Add(keyword, *a)
		t.hit("l2")
		return a, nil
	}

	a, err := t.store.GetKeywordAnalysis(ctx, keyword)
	if err != nil {
		if errors.Is(err, db.ErrAnalysisNotFound) {
			t.misses.Add(1)
			metrics.RecordCacheRequest("store", false)
		}
		return nil, err
	}
	if a.IsExpired(now) {
		t.misses.Add(1)
		metrics.RecordCacheRequest("store", false)
		return a, nil
	}

	t.hit("store")
	t.setL2(ctx, a, now)
	t.l1.Add(keyword, *a)
	return a, nil
}

// UpsertKeywordAnalysis writes the store, then L2, then L1.
func (t *Tiered) UpsertKeywordAnalysis(ctx context.Context, a *models.KeywordAnalysis) error {
	if err := t.store.UpsertKeywordAnalysis(ctx, a); err != nil {
		return err
	}
	now := t.now()
	if a.IsExpired(now) {
		return nil
	}
	t.setL2(ctx, a, now)
	t.l1.Add(a.Keyword, *a)
	return nil
}

// Stats returns hit and miss counters across all tiers.
func (t *Tiered) Stats() (hits, misses int64) {
	return t.hits.Load(), t.misses.Load()
}

func (t *Tiered) hit(tier string) {
	t.hits.Add(1)
	metrics.RecordCacheRequest(tier, true)
	t.log.Debug("cache: hit", slog.String("tier", tier))
}

func (t *Tiered) getL2(ctx context.Context, keyword string, now time.Time) (*models.KeywordAnalysis, bool) {
	if t.l2 == nil {
		return nil, false
	}
	data, err := t.l2.GetWithContext(ctx, keyPrefix+keyword)
	if err != nil {
		t.log.Warn("cache: L2 get failed", slog.Any("error", err))
		metrics.RecordCacheRequest("l2", false)
		return nil, false
	}
	if len(data) == 0 {
		metrics.RecordCacheRequest("l2", false)
		return nil, false
	}
	var a models.KeywordAnalysis
	if err := json.Unmarshal(data, &a); err != nil || a.IsExpired(now) {
		metrics.RecordCacheRequest("l2", false)
		return nil, false
	}
	return &a, true
}

func (t *Tiered) setL2(ctx context.Context, a *models.KeywordAnalysis, now time.Time) {
	if t.l2 == nil {
		return
	}
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := t.l2.SetWithContext(ctx, keyPrefix+a.Keyword, data, a.TTLRemaining(now)); err != nil {
		t.log.Warn("cache: L2 set failed", slog.Any("error", err))
	}
}
