// Package keywords estimates how attractive a YouTube keyword is to target
// and keeps the results in a TTL-bounded cache.
package keywords

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ytinsight/internal/db"
	"ytinsight/internal/metrics"
	"ytinsight/internal/models"
	"ytinsight/internal/validation"
	"ytinsight/internal/youtube"
)

// Connector opens an upstream session for one logical analysis.
type Connector interface {
	Open(ctx context.Context) (youtube.Session, error)
}

// Store is the persistent analysis cache. Get returns db.ErrAnalysisNotFound
// on a miss.
type Store interface {
	GetKeywordAnalysis(ctx context.Context, keyword string) (*models.KeywordAnalysis, error)
	UpsertKeywordAnalysis(ctx context.Context, a *models.KeywordAnalysis) error
}

// Analyzer computes keyword metrics, reading through and writing through
// the cache.
type Analyzer struct {
	connector Connector
	store     Store
	ttl       time.Duration
	now       func() time.Time
	suffixes  FallbackSuffixes
	log       *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTTL sets how long analyses stay fresh.
func WithTTL(ttl time.Duration) Option {
	return func(a *Analyzer) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// WithFallbackSuffixes replaces the related keyword templates.
func WithFallbackSuffixes(s FallbackSuffixes) Option {
	return func(a *Analyzer) { a.suffixes = s }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(connector Connector, store Store, opts ...Option) *Analyzer {
	a := &Analyzer{
		connector: connector,
		store:     store,
		ttl:       models.DefaultAnalysisTTL,
		now:       time.Now,
		suffixes:  DefaultFallbackSuffixes(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze returns the analysis for keyword, from the cache when a fresh
// record exists and from upstream otherwise.
func (a *Analyzer) Analyze(ctx context.Context, keyword string) (*models.KeywordAnalysisResult, error) {
	keyword = validation.NormalizeKeyword(keyword)
	if err := validation.ValidateKeyword(keyword); err != nil {
		return nil, err
	}
	defer metrics.ObserveAnalysis("keyword", time.Now())

	now := a.clock()
	cached, err := a.store.GetKeywordAnalysis(ctx, keyword)
	switch {
	case err == nil && !cached.IsExpired(now):
		a.log.Info("returning cached analysis", slog.String("keyword", keyword))
		metrics.RecordKeywordLookup(keyword, models.OutcomeCacheHit)
		return cached.Result(), nil
	case err != nil && !errors.Is(err, db.ErrAnalysisNotFound):
		metrics.RecordKeywordLookup(keyword, models.OutcomeFailed)
		return nil, fmt.Errorf("failed to read cached analysis: %w", err)
	}

	a.log.Info("performing fresh analysis", slog.String("keyword", keyword))
	record, err := a.analyzeFresh(ctx, keyword, now)
	if err != nil {
		metrics.RecordKeywordLookup(keyword, models.OutcomeFailed)
		return nil, err
	}

	if err := a.store.UpsertKeywordAnalysis(ctx, record); err != nil {
		// The analysis is still valid; it just won't be served from cache.
		a.log.Error("failed to cache analysis", slog.String("keyword", keyword), slog.Any("error", err))
	}
	metrics.RecordKeywordLookup(keyword, models.OutcomeAnalyzed)
	return record.Result(), nil
}

func (a *Analyzer) analyzeFresh(ctx context.Context, keyword string, now time.Time) (*models.KeywordAnalysis, error) {
	session, err := a.connector.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	results, err := session.SearchVideos(ctx, keyword, maxSearchResults, youtube.OrderRelevance)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}

	volume := EstimateSearchVolume(results, now)
	competition, err := a.competition(ctx, session, results, now)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(results))
	for _, r := range results {
		titles = append(titles, r.Title)
	}

	return &models.KeywordAnalysis{
		ID:                  uuid.New(),
		Keyword:             keyword,
		SearchVolume:        volume,
		Competition:         competition,
		RecommendationScore: RecommendationScore(volume, competition),
		RelatedKeywords:     MineRelatedKeywords(keyword, titles, a.suffixes),
		AnalyzedAt:          now,
		ExpiresAt:           now.Add(a.ttl),
	}, nil
}

// clock returns the current time at the precision every store keeps.
func (a *Analyzer) clock() time.Time {
	return a.now().UTC().Truncate(time.Microsecond)
}
