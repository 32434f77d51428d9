package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ytinsight/internal/models"
)

var (
	keywordLookupDesc = prometheus.NewDesc(
		"ytinsight_keyword_lookups_total",
		"Total keyword analysis lookups by outcome",
		[]string{"keyword", "outcome"},
		nil,
	)

	upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ytinsight_upstream_requests_total",
		Help: "YouTube Data API calls by call and outcome",
	}, []string{"call", "outcome"})

	upstreamQuotaUnits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytinsight_upstream_quota_units_total",
		Help: "YouTube Data API quota units spent",
	})

	cacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ytinsight_cache_requests_total",
		Help: "Analysis cache reads by tier and result",
	}, []string{"tier", "result"})

	analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ytinsight_analysis_duration_seconds",
		Help:    "Wall time of analyses by kind",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"kind"})
)

// LookupStore persists per-keyword lookup counters.
type LookupStore interface {
	IncrementAnalysisLookup(ctx context.Context, keyword, outcome string) error
	GetAllAnalysisLookups(ctx context.Context) ([]models.KeywordLookup, error)
}

// KeywordCollector is a custom Prometheus collector that reads keyword lookup
// counts from the database on each scrape.
type KeywordCollector struct {
	store LookupStore
}

// NewKeywordCollector returns a collector over store.
func NewKeywordCollector(store LookupStore) *KeywordCollector {
	return &KeywordCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *KeywordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordLookupDesc
}

// Collect queries the database for all keyword lookups and emits them as counters.
func (c *KeywordCollector) Collect(ch chan<- prometheus.Metric) {
	lookups, err := c.store.GetAllAnalysisLookups(context.Background())
	if err != nil {
		slog.Error("failed to collect keyword lookup metrics", "error", err)
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			keywordLookupDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.Keyword,
			l.Outcome,
		)
	}
}

// Recorder provides async keyword lookup recording.
type Recorder struct {
	store LookupStore
	wg    sync.WaitGroup
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers all collectors and initializes the recorder.
// Must be called once at startup.
func Init(store LookupStore) {
	recorderOnce.Do(func() {
		recorder = &Recorder{store: store}
		prometheus.MustRegister(
			NewKeywordCollector(store),
			upstreamRequests,
			upstreamQuotaUnits,
			cacheRequests,
			analysisDuration,
		)
	})
}

// RecordKeywordLookup asynchronously records a keyword lookup outcome.
func RecordKeywordLookup(keyword, outcome string) {
	if recorder == nil {
		return
	}
	recorder.wg.Add(1)
	go func() {
		defer recorder.wg.Done()
		if err := recorder.store.IncrementAnalysisLookup(context.Background(), keyword, outcome); err != nil {
			slog.Error("failed to record keyword lookup", "keyword", keyword, "outcome", outcome, "error", err)
		}
	}()
}

// Flush waits for pending lookup writes. Called on shutdown before the
// store is closed.
func Flush() {
	if recorder == nil {
		return
	}
	recorder.wg.Wait()
}

// RecordUpstreamRequest counts one YouTube Data API call.
func RecordUpstreamRequest(call, outcome string) {
	upstreamRequests.WithLabelValues(call, outcome).Inc()
}

// AddQuotaUnits adds spent quota units.
func AddQuotaUnits(units int64) {
	upstreamQuotaUnits.Add(float64(units))
}

// RecordCacheRequest counts one cache read against a tier ("l1", "l2", "store").
func RecordCacheRequest(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequests.WithLabelValues(tier, result).Inc()
}

// ObserveAnalysis records how long an analysis of kind took.
func ObserveAnalysis(kind string, started time.Time) {
	analysisDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}
