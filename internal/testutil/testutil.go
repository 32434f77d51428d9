// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ytinsight/internal/db"
	"ytinsight/internal/models"
)

// TestDB connects to TEST_DATABASE_URL, runs migrations and returns a
// cleanup function. Tests are skipped when no database is configured.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM keyword_analyses")
	pool.Exec(ctx, "DELETE FROM analysis_lookups")
}

// Analysis builds a keyword analysis analyzed at the given instant with the
// default TTL.
func Analysis(keyword string, analyzedAt time.Time) *models.KeywordAnalysis {
	analyzedAt = analyzedAt.UTC().Truncate(time.Microsecond)
	return &models.KeywordAnalysis{
		ID:                  uuid.New(),
		Keyword:             keyword,
		SearchVolume:        1300,
		Competition:         0.4,
		RecommendationScore: 66,
		RelatedKeywords: []models.RelatedKeyword{
			{Keyword: keyword + " tutorial", SearchVolume: 100, Competition: 0.5},
		},
		AnalyzedAt: analyzedAt,
		ExpiresAt:  analyzedAt.Add(models.DefaultAnalysisTTL),
	}
}

// SeedAnalysis writes an analysis straight into the store.
func SeedAnalysis(t *testing.T, database *db.DB, a *models.KeywordAnalysis) {
	t.Helper()
	if err := database.UpsertKeywordAnalysis(context.Background(), a); err != nil {
		t.Fatalf("failed to seed analysis %q: %v", a.Keyword, err)
	}
}
