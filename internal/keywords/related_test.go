package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytinsight/internal/config"
	"ytinsight/internal/models"
)

func keywordsOf(related []models.RelatedKeyword) []string {
	out := make([]string, len(related))
	for i, r := range related {
		out[i] = r.Keyword
	}
	return out
}

func TestMineRelatedKeywordsRanksByFrequency(t *testing.T) {
	titles := []string{
		"Go concurrency patterns explained",
		"go concurrency patterns in practice",
		"Advanced Go concurrency!",
	}

	got := MineRelatedKeywords("golang", titles, DefaultFallbackSuffixes())
	require.Len(t, got, 10)
	assert.Equal(t, []string{
		"go concurrency",
		"go concurrency patterns",
		"concurrency patterns",
		"go concurrency patterns explained",
		"concurrency patterns explained",
		"patterns explained",
		"go concurrency patterns in",
		"concurrency patterns in",
		"concurrency patterns in practice",
		"patterns in",
	}, keywordsOf(got))

	assert.Equal(t, models.RelatedKeyword{Keyword: "go concurrency", SearchVolume: 300, Competition: 0.45}, got[0])
	assert.Equal(t, models.RelatedKeyword{Keyword: "go concurrency patterns", SearchVolume: 200, Competition: 0.4}, got[1])
	assert.Equal(t, 100, got[9].SearchVolume)
	assert.Equal(t, 0.35, got[9].Competition)
}

func TestMineRelatedKeywordsExcludesKeyword(t *testing.T) {
	titles := []string{
		"Go Concurrency patterns explained",
		"go concurrency in depth",
		"learn go concurrency today",
	}

	got := MineRelatedKeywords("  Go Concurrency ", titles, DefaultFallbackSuffixes())
	require.GreaterOrEqual(t, len(got), 5)
	for _, rk := range got[:countMined(got)] {
		assert.NotContains(t, rk.Keyword, "go concurrency")
	}
}

func countMined(related []models.RelatedKeyword) int {
	n := 0
	for _, r := range related {
		if r.SearchVolume != fallbackVolume || r.Competition != fallbackCompetition {
			n++
		}
	}
	return n
}

func TestMineRelatedKeywordsDropsNumericAndShortPhrases(t *testing.T) {
	got := MineRelatedKeywords("review", []string{"2024 2025 best"}, FallbackSuffixes{})
	assert.Equal(t, []string{"2024 2025 best", "2025 best"}, keywordsOf(got))

	long := strings.Repeat("a", 30) + " " + strings.Repeat("b", 30)
	got = MineRelatedKeywords("review", []string{long}, FallbackSuffixes{})
	assert.Empty(t, got)
}

func TestMineRelatedKeywordsHangulFallback(t *testing.T) {
	got := MineRelatedKeywords("파이썬", nil, DefaultFallbackSuffixes())
	assert.Equal(t, []string{"파이썬 강의", "파이썬 튜토리얼", "파이썬 기초", "파이썬 입문", "파이썬 배우기"}, keywordsOf(got))
	for _, rk := range got {
		assert.Equal(t, 100, rk.SearchVolume)
		assert.Equal(t, 0.5, rk.Competition)
	}
}

func TestMineRelatedKeywordsTopsUpMinedList(t *testing.T) {
	got := MineRelatedKeywords("rust", []string{"Memory Safety"}, DefaultFallbackSuffixes())
	assert.Equal(t, []string{"memory safety", "rust tutorial", "rust basics", "rust for beginners", "rust guide"}, keywordsOf(got))
}

func TestMineRelatedKeywordsDeduplicatesFallbacks(t *testing.T) {
	suffixes := FallbackSuffixes{Latin: []string{"tutorial", "Tutorial", "tutorial ", "guide"}}
	got := MineRelatedKeywords("rust", nil, suffixes)
	assert.Equal(t, []string{"rust tutorial", "rust guide"}, keywordsOf(got))
}

func TestFallbackSuffixOverrides(t *testing.T) {
	s := DefaultFallbackSuffixes().WithOverrides(&config.LexiconConfig{
		FallbackSuffixes: config.FallbackSuffixes{Latin: []string{"crash course"}},
	})
	assert.Equal(t, []string{"crash course"}, s.Latin)
	assert.Equal(t, DefaultFallbackSuffixes().Hangul, s.Hangul)
}

func TestTokenizeTitle(t *testing.T) {
	assert.Equal(t, []string{"파이썬", "강의", "1편", "c", "기초"}, tokenizeTitle("[파이썬 강의] 1편 - C++ 기초!!"))
}
