package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// HTTP rate limiting, requests per IP per minute. 0 disables the limiter.
	RateLimitMax int

	// Cache backends
	CacheBackend       string // "postgres" or "sqlite"
	DatabaseURL        string
	SQLitePath         string
	RedisURL           string // optional L2 tier and limiter storage
	CacheL1Size        int
	CacheTTL           time.Duration
	CachePurgeInterval time.Duration

	// YouTube Data API
	YouTubeAPIKey     string
	YouTubeEndpoint   string // override for tests and proxies, empty = Google default
	YouTubeTimeout    time.Duration
	YouTubeMaxRetries int
	YouTubeRPS        float64 // client-side pacing, 0 = unlimited

	// Text analysis
	LexiconFile string // env: LEXICON_FILE, optional YAML overrides

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":8000"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8000"),
		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 60),

		CacheBackend:       getEnv("CACHE_BACKEND", "postgres"),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/ytinsight?sslmode=disable"),
		SQLitePath:         getEnv("SQLITE_PATH", "ytinsight.db"),
		RedisURL:           getEnv("REDIS_URL", ""),
		CacheL1Size:        getEnvInt("CACHE_L1_SIZE", 1024),
		CacheTTL:           getEnvDuration("CACHE_TTL", 7*24*time.Hour),
		CachePurgeInterval: getEnvDuration("CACHE_PURGE_INTERVAL", time.Hour),

		YouTubeAPIKey:     getEnv("YOUTUBE_API_KEY", ""),
		YouTubeEndpoint:   getEnv("YOUTUBE_API_ENDPOINT", ""),
		YouTubeTimeout:    getEnvDuration("YOUTUBE_TIMEOUT", 30*time.Second),
		YouTubeMaxRetries: getEnvInt("YOUTUBE_MAX_RETRIES", 3),
		YouTubeRPS:        getEnvFloat("YOUTUBE_RPS", 10),

		LexiconFile: getEnv("LEXICON_FILE", "lexicon.yaml"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// UseSQLite reports whether the persistent cache lives in a local SQLite file.
func (c *Config) UseSQLite() bool {
	return c.CacheBackend == "sqlite"
}
