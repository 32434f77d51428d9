package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytinsight/internal/models"
)

type fakeLookupStore struct {
	lookups []models.KeywordLookup
	err     error
}

func (f *fakeLookupStore) IncrementAnalysisLookup(ctx context.Context, keyword, outcome string) error {
	return f.err
}

func (f *fakeLookupStore) GetAllAnalysisLookups(ctx context.Context) ([]models.KeywordLookup, error) {
	return f.lookups, f.err
}

func TestKeywordCollector(t *testing.T) {
	store := &fakeLookupStore{lookups: []models.KeywordLookup{
		{Keyword: "파이썬 강의", Outcome: models.OutcomeAnalyzed, Count: 2, LastSeenAt: time.Now()},
		{Keyword: "파이썬 강의", Outcome: models.OutcomeCacheHit, Count: 7, LastSeenAt: time.Now()},
	}}

	expected := `
# HELP ytinsight_keyword_lookups_total Total keyword analysis lookups by outcome
# TYPE ytinsight_keyword_lookups_total counter
ytinsight_keyword_lookups_total{keyword="파이썬 강의",outcome="analyzed"} 2
ytinsight_keyword_lookups_total{keyword="파이썬 강의",outcome="cache_hit"} 7
`
	err := testutil.CollectAndCompare(NewKeywordCollector(store), strings.NewReader(expected))
	require.NoError(t, err)
}

func TestKeywordCollectorStoreError(t *testing.T) {
	store := &fakeLookupStore{err: errors.New("db down")}
	assert.Equal(t, 0, testutil.CollectAndCount(NewKeywordCollector(store)))
}

func TestRecordUpstreamRequest(t *testing.T) {
	before := testutil.ToFloat64(upstreamRequests.WithLabelValues("search", "ok"))
	RecordUpstreamRequest("search", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(upstreamRequests.WithLabelValues("search", "ok")))

	q := testutil.ToFloat64(upstreamQuotaUnits)
	AddQuotaUnits(100)
	assert.Equal(t, q+100, testutil.ToFloat64(upstreamQuotaUnits))
}

func TestRecordCacheRequest(t *testing.T) {
	hits := testutil.ToFloat64(cacheRequests.WithLabelValues("l1", "hit"))
	misses := testutil.ToFloat64(cacheRequests.WithLabelValues("l1", "miss"))
	RecordCacheRequest("l1", true)
	RecordCacheRequest("l1", false)
	RecordCacheRequest("l1", false)
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheRequests.WithLabelValues("l1", "hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(cacheRequests.WithLabelValues("l1", "miss")))
}

func TestRecordKeywordLookupWithoutInit(t *testing.T) {
	// No recorder configured: must be a no-op.
	RecordKeywordLookup("go", models.OutcomeFailed)
	Flush()
}
