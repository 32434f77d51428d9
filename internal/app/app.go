// Package app wires configuration into the analyzers, stores and jobs.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"

	"ytinsight/internal/cache"
	"ytinsight/internal/comments"
	"ytinsight/internal/config"
	"ytinsight/internal/db"
	"ytinsight/internal/handlers/api"
	"ytinsight/internal/jobs"
	"ytinsight/internal/keywords"
	"ytinsight/internal/metrics"
	"ytinsight/internal/models"
	"ytinsight/internal/server"
	"ytinsight/internal/textanalysis"
	"ytinsight/internal/youtube"
)

// Store is what the application needs from a persistent backend.
type Store interface {
	GetKeywordAnalysis(ctx context.Context, keyword string) (*models.KeywordAnalysis, error)
	UpsertKeywordAnalysis(ctx context.Context, a *models.KeywordAnalysis) error
	DeleteExpiredKeywordAnalyses(ctx context.Context, now time.Time) (int64, error)
	IncrementAnalysisLookup(ctx context.Context, keyword, outcome string) error
	GetAllAnalysisLookups(ctx context.Context) ([]models.KeywordLookup, error)
	Ping(ctx context.Context) error
	Close() error
}

// OpenStore opens the backend selected by CACHE_BACKEND. Postgres schemas
// are migrated on open; SQLite creates its tables itself.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (Store, error) {
	if cfg.UseSQLite() {
		store, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("using sqlite store", slog.String("path", cfg.SQLitePath))
		return store, nil
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("migrations completed")
	return database, nil
}

// App holds every long-lived component.
type App struct {
	Cfg *config.Config
	Log *slog.Logger

	Store     Store
	Cache     *cache.Tiered
	Redis     *redis.Storage // nil without REDIS_URL
	YouTube   *youtube.Client
	Analyzer  *keywords.Analyzer
	Ranker    *keywords.Ranker
	Quota     *keywords.QuotaChecker
	Collector *comments.Collector
	Janitor   *jobs.CacheJanitor
}

// New builds the application. The returned App owns the store and must be
// closed.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	lexCfg, err := config.LoadLexicon(cfg.LexiconFile)
	if err != nil {
		return nil, err
	}
	if lexCfg != nil {
		log.Info("loaded lexicon overrides", slog.String("file", cfg.LexiconFile))
	}
	engine, err := textanalysis.NewEngine(textanalysis.DefaultLexicon().WithOverrides(lexCfg))
	if err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}

	client, err := youtube.New(ctx, youtube.Config{
		APIKey:     cfg.YouTubeAPIKey,
		Endpoint:   cfg.YouTubeEndpoint,
		Timeout:    cfg.YouTubeTimeout,
		MaxRetries: cfg.YouTubeMaxRetries,
		RPS:        cfg.YouTubeRPS,
	}, log.With("component", "youtube"))
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	metrics.Init(store)

	a := &App{Cfg: cfg, Log: log, Store: store, YouTube: client}

	tierCfg := cache.Config{L1Size: cfg.CacheL1Size, Logger: log.With("component", "cache")}
	if cfg.RedisURL != "" {
		r, err := cache.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, L2 cache and shared rate limits disabled", slog.Any("error", err))
		} else {
			a.Redis = r
			tierCfg.L2 = r
		}
	}
	a.Cache = cache.NewTiered(store, tierCfg)

	a.Analyzer = keywords.NewAnalyzer(client, a.Cache,
		keywords.WithTTL(cfg.CacheTTL),
		keywords.WithFallbackSuffixes(keywords.DefaultFallbackSuffixes().WithOverrides(lexCfg)),
		keywords.WithLogger(log.With("component", "keywords")),
	)
	a.Ranker = keywords.NewRanker(client, log.With("component", "ranking"))
	a.Quota = keywords.NewQuotaChecker(client, log.With("component", "quota"))
	a.Collector = comments.NewCollector(client, engine, log.With("component", "comments"))
	a.Janitor = jobs.NewCacheJanitor(store, cfg.CachePurgeInterval, log.With("component", "janitor"))

	return a, nil
}

// Handlers builds the HTTP handlers over the app's components.
func (a *App) Handlers() server.Handlers {
	return server.Handlers{
		Keywords: api.NewKeywordHandler(a.Analyzer, a.Log),
		Comments: api.NewCommentHandler(a.Collector, a.Log),
		YouTube:  api.NewYouTubeHandler(a.Ranker, a.Quota, a.Log),
		Health:   api.NewHealthHandler(a.Store, a.Log),
	}
}

// LimiterStorage returns the shared limiter backend, or nil for in-memory.
func (a *App) LimiterStorage() fiber.Storage {
	if a.Redis == nil {
		return nil
	}
	return a.Redis
}

// Close flushes pending metric writes and releases every connection.
func (a *App) Close() error {
	metrics.Flush()
	if a.Cache != nil {
		hits, misses := a.Cache.Stats()
		a.Log.Info("analysis cache stats", slog.Int64("hits", hits), slog.Int64("misses", misses))
	}
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	errs = append(errs, a.Store.Close())
	return errors.Join(errs...)
}
