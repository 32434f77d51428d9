package keywords

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"ytinsight/internal/config"
	"ytinsight/internal/models"
)

const (
	maxRelatedKeywords  = 10
	minRelatedKeywords  = 5
	minPhraseRunes      = 2
	maxPhraseRunes      = 50
	volumePerOccurrence = 100
	maxRelatedVolume    = 5000
	baseCompetition     = 0.3
	competitionPerHit   = 0.05
	maxRelatedCompete   = 0.9
	fallbackVolume      = 100
	fallbackCompetition = 0.5
)

var (
	phraseLengths = []int{2, 3, 4}
	titleNoise    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// FallbackSuffixes are appended to the keyword when too few related phrases
// can be mined. Hangul keywords use the Hangul list.
type FallbackSuffixes struct {
	Hangul []string
	Latin  []string
}

// DefaultFallbackSuffixes returns the built-in suffix templates.
func DefaultFallbackSuffixes() FallbackSuffixes {
	return FallbackSuffixes{
		Hangul: []string{"강의", "튜토리얼", "기초", "입문", "배우기", "초보", "강좌", "설명", "예제", "실습"},
		Latin:  []string{"tutorial", "basics", "for beginners", "guide", "course", "explained", "tips", "examples", "project", "review"},
	}
}

// WithOverrides replaces each list the YAML file sets.
func (f FallbackSuffixes) WithOverrides(cfg *config.LexiconConfig) FallbackSuffixes {
	if cfg == nil {
		return f
	}
	if len(cfg.FallbackSuffixes.Hangul) > 0 {
		f.Hangul = cfg.FallbackSuffixes.Hangul
	}
	if len(cfg.FallbackSuffixes.Latin) > 0 {
		f.Latin = cfg.FallbackSuffixes.Latin
	}
	return f
}

func (f FallbackSuffixes) forKeyword(keyword string) []string {
	for _, r := range keyword {
		if unicode.Is(unicode.Hangul, r) {
			return f.Hangul
		}
	}
	return f.Latin
}

// MineRelatedKeywords extracts 2 to 4 word phrases from titles, ranks them by
// frequency and tops the list up with suffix templates until it holds at
// least five entries. The result never has more than ten entries or any
// duplicates.
func MineRelatedKeywords(keyword string, titles []string, suffixes FallbackSuffixes) []models.RelatedKeyword {
	keywordLower := strings.ToLower(strings.TrimSpace(keyword))

	freq := make(map[string]int)
	var order []string
	for _, title := range titles {
		tokens := tokenizeTitle(title)
		for i := range tokens {
			for _, n := range phraseLengths {
				if i+n > len(tokens) {
					continue
				}
				phrase := strings.Join(tokens[i:i+n], " ")
				if !isValidPhrase(phrase, keywordLower) {
					continue
				}
				if freq[phrase] == 0 {
					order = append(order, phrase)
				}
				freq[phrase]++
			}
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(freq[b], freq[a])
	})
	if len(order) > maxRelatedKeywords {
		order = order[:maxRelatedKeywords]
	}

	related := make([]models.RelatedKeyword, 0, maxRelatedKeywords)
	seen := make(map[string]struct{}, maxRelatedKeywords)
	for _, phrase := range order {
		f := freq[phrase]
		related = append(related, models.RelatedKeyword{
			Keyword:      phrase,
			SearchVolume: min(f*volumePerOccurrence, maxRelatedVolume),
			Competition:  round2(math.Min(baseCompetition+float64(f)*competitionPerHit, maxRelatedCompete)),
		})
		seen[phrase] = struct{}{}
	}

	if len(related) >= minRelatedKeywords {
		return related
	}

	base := strings.TrimSpace(keyword)
	for _, suffix := range suffixes.forKeyword(base) {
		if len(related) >= minRelatedKeywords {
			break
		}
		candidate := base + " " + strings.TrimSpace(suffix)
		lowered := strings.ToLower(candidate)
		if _, dup := seen[lowered]; dup || lowered == keywordLower {
			continue
		}
		seen[lowered] = struct{}{}
		related = append(related, models.RelatedKeyword{
			Keyword:      candidate,
			SearchVolume: fallbackVolume,
			Competition:  fallbackCompetition,
		})
	}
	return related
}

// tokenizeTitle lower-cases a title, replaces everything but letters, digits,
// underscores and spaces with a space, and splits on whitespace.
func tokenizeTitle(title string) []string {
	return strings.Fields(titleNoise.ReplaceAllString(strings.ToLower(title), " "))
}

func isValidPhrase(phrase, keywordLower string) bool {
	phrase = strings.TrimSpace(phrase)
	n := utf8.RuneCountInString(phrase)
	if n < minPhraseRunes || n > maxPhraseRunes {
		return false
	}
	if phrase == keywordLower || (keywordLower != "" && strings.Contains(phrase, keywordLower)) {
		return false
	}
	return !isNumeric(strings.ReplaceAll(phrase, " ", ""))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
