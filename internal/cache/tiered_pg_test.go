package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytinsight/internal/db"
	"ytinsight/internal/testutil"
)

func TestTiered_Postgres(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	now := time.Now().UTC()

	testutil.SeedAnalysis(t, database, testutil.Analysis("golang", now.Add(-time.Hour)))
	testutil.SeedAnalysis(t, database, testutil.Analysis("stale", now.Add(-8*24*time.Hour)))

	c := NewTiered(database, Config{L1Size: 4})

	got, err := c.GetKeywordAnalysis(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, 1300, got.SearchVolume)
	require.Len(t, got.RelatedKeywords, 1)

	stale, err := c.GetKeywordAnalysis(ctx, "stale")
	require.NoError(t, err)
	assert.True(t, stale.IsExpired(now))

	_, err = c.GetKeywordAnalysis(ctx, "missing")
	assert.ErrorIs(t, err, db.ErrAnalysisNotFound)

	n, err := database.DeleteExpiredKeywordAnalyses(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
