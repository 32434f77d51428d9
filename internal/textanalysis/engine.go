package textanalysis

import (
	"cmp"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"ytinsight/internal/models"
)

const (
	maxFrequentWords  = 20
	maxRequests       = 10
	maxQuestions      = 10
	maxTopComments    = 5
	maxHighlightRunes = 200
	minQuestionRunes  = 5
)

var wordPattern = regexp.MustCompile(`[가-힣a-zA-Z0-9]+`)

// Engine runs the comment text passes. It holds only compiled, read-only
// data and is safe for concurrent use.
type Engine struct {
	stopWords     map[string]struct{}
	positive      []string
	negative      []string
	requestsKo    []*regexp.Regexp
	requestsEn    []*regexp.Regexp
	questionEn    *regexp.Regexp
	questionKo    []string
	anonymousName string
}

// NewEngine compiles a lexicon. Invalid request patterns are reported.
func NewEngine(lex Lexicon) (*Engine, error) {
	e := &Engine{
		stopWords:     make(map[string]struct{}, len(lex.StopWords)),
		positive:      lower(lex.PositiveWords),
		negative:      lower(lex.NegativeWords),
		questionKo:    lex.QuestionPrefixesKo,
		anonymousName: lex.AnonymousAuthor,
	}
	for _, w := range lex.StopWords {
		e.stopWords[strings.ToLower(w)] = struct{}{}
	}

	var err error
	if e.requestsKo, err = compileAll(lex.RequestPatternsKo); err != nil {
		return nil, fmt.Errorf("request_patterns_ko: %w", err)
	}
	if e.requestsEn, err = compileAll(lex.RequestPatternsEn); err != nil {
		return nil, fmt.Errorf("request_patterns_en: %w", err)
	}
	if len(lex.QuestionWords) > 0 {
		quoted := make([]string, len(lex.QuestionWords))
		for i, w := range lex.QuestionWords {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
		}
		e.questionEn = regexp.MustCompile(`^(?i:` + strings.Join(quoted, "|") + `)\s+`)
	}
	return e, nil
}

// MustNewEngine is NewEngine for lexicons known to be valid.
func MustNewEngine(lex Lexicon) *Engine {
	e, err := NewEngine(lex)
	if err != nil {
		panic(err)
	}
	return e
}

// Analyze runs every pass over the same comment list.
func (e *Engine) Analyze(comments []models.RawComment) models.CommentAnalysis {
	return models.CommentAnalysis{
		FrequentWords:   e.FrequentWords(comments),
		ViewerRequests:  e.ViewerRequests(comments),
		ViewerQuestions: e.ViewerQuestions(comments),
		TopComments:     e.TopComments(comments),
		Sentiment:       e.Sentiment(comments),
	}
}

// FrequentWords counts non-stop-word tokens across all comments and returns
// the most common ones. Ties keep first-seen order.
func (e *Engine) FrequentWords(comments []models.RawComment) []models.FrequentWord {
	counts := make(map[string]int)
	var order []string
	total := 0

	for _, c := range comments {
		for _, tok := range wordPattern.FindAllString(c.Text, -1) {
			tok = strings.ToLower(tok)
			if utf8.RuneCountInString(tok) <= 1 {
				continue
			}
			if _, stop := e.stopWords[tok]; stop {
				continue
			}
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
			total++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	if len(order) > maxFrequentWords {
		order = order[:maxFrequentWords]
	}

	words := make([]models.FrequentWord, 0, len(order))
	for _, w := range order {
		words = append(words, models.FrequentWord{
			Word:       w,
			Count:      counts[w],
			Percentage: round(float64(counts[w])/float64(total)*100, 1),
		})
	}
	return words
}

// ViewerRequests returns comments that ask the creator for something.
func (e *Engine) ViewerRequests(comments []models.RawComment) []models.ViewerRequest {
	var out []models.ViewerRequest
	for _, c := range comments {
		if e.isRequest(c.Text) {
			out = append(out, e.highlight(c, c.Text))
		}
	}
	return byLikes(out, maxRequests)
}

func (e *Engine) isRequest(text string) bool {
	for _, re := range e.requestsKo {
		if re.MatchString(text) {
			return true
		}
	}
	lowered := strings.ToLower(text)
	for _, re := range e.requestsEn {
		if re.MatchString(lowered) {
			return true
		}
	}
	return false
}

// ViewerQuestions returns comments phrased as questions. A comment may be
// both a request and a question.
func (e *Engine) ViewerQuestions(comments []models.RawComment) []models.ViewerQuestion {
	var out []models.ViewerQuestion
	for _, c := range comments {
		text := strings.TrimSpace(c.Text)
		if e.isQuestion(text) {
			out = append(out, e.highlight(c, text))
		}
	}
	return byLikes(out, maxQuestions)
}

func (e *Engine) isQuestion(text string) bool {
	if utf8.RuneCountInString(text) < minQuestionRunes {
		return false
	}
	if strings.HasSuffix(text, "?") {
		return true
	}
	if e.questionEn != nil && e.questionEn.MatchString(text) {
		return true
	}
	for _, p := range e.questionKo {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

// TopComments returns the most-liked comments with non-empty text.
func (e *Engine) TopComments(comments []models.RawComment) []models.TopComment {
	sorted := slices.Clone(comments)
	slices.SortStableFunc(sorted, func(a, b models.RawComment) int {
		return cmp.Compare(b.LikeCount, a.LikeCount)
	})

	out := make([]models.TopComment, 0, maxTopComments)
	for _, c := range sorted {
		if len(out) == maxTopComments {
			break
		}
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		out = append(out, e.highlight(c, text))
	}
	return out
}

// Sentiment classifies each comment by how many positive and negative
// lexicon entries its lower-cased text contains.
func (e *Engine) Sentiment(comments []models.RawComment) models.SentimentResult {
	if len(comments) == 0 {
		return models.SentimentResult{}
	}

	var pos, neg, neu int
	for _, c := range comments {
		text := strings.ToLower(c.Text)
		p := containsCount(text, e.positive)
		n := containsCount(text, e.negative)
		switch {
		case p > n:
			pos++
		case n > p:
			neg++
		default:
			neu++
		}
	}

	total := float64(len(comments))
	return models.SentimentResult{
		Positive:      round(float64(pos)/total, 2),
		Neutral:       round(float64(neu)/total, 2),
		Negative:      round(float64(neg)/total, 2),
		TotalAnalyzed: len(comments),
	}
}

func (e *Engine) highlight(c models.RawComment, text string) models.HighlightedComment {
	author := c.Author
	if strings.TrimSpace(author) == "" {
		author = e.anonymousName
	}
	return models.HighlightedComment{
		Text:      truncate(text, maxHighlightRunes),
		LikeCount: c.LikeCount,
		Author:    author,
	}
}

func byLikes(items []models.HighlightedComment, limit int) []models.HighlightedComment {
	slices.SortStableFunc(items, func(a, b models.HighlightedComment) int {
		return cmp.Compare(b.LikeCount, a.LikeCount)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []models.HighlightedComment{}
	}
	return items
}

func containsCount(text string, words []string) int {
	n := 0
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func lower(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
