package textanalysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytinsight/internal/config"
	"ytinsight/internal/models"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultLexicon())
	require.NoError(t, err)
	return e
}

func comment(text string, likes int64, author string) models.RawComment {
	return models.RawComment{Text: text, LikeCount: likes, Author: author}
}

func TestAnalyzeEmpty(t *testing.T) {
	got := newEngine(t).Analyze(nil)

	assert.NotNil(t, got.FrequentWords)
	assert.Empty(t, got.FrequentWords)
	assert.Empty(t, got.ViewerRequests)
	assert.Empty(t, got.ViewerQuestions)
	assert.Empty(t, got.TopComments)
	assert.Equal(t, models.SentimentResult{}, got.Sentiment)
}

func TestSentimentScenario(t *testing.T) {
	comments := []models.RawComment{
		comment("This is great", 0, "a"),
		comment("정말 최고의 강의", 0, "b"),
		comment("so helpful", 0, "c"),
		comment("terrible audio", 0, "d"),
		comment("완전 실망", 0, "e"),
	}

	got := newEngine(t).Sentiment(comments)
	assert.Equal(t, models.SentimentResult{Positive: 0.6, Neutral: 0.0, Negative: 0.4, TotalAnalyzed: 5}, got)
}

func TestSentimentRatiosSumToOne(t *testing.T) {
	comments := []models.RawComment{
		comment("good", 0, ""),
		comment("bad", 0, ""),
		comment("meh", 0, ""),
	}
	got := newEngine(t).Sentiment(comments)
	assert.InDelta(t, 1.0, got.Positive+got.Neutral+got.Negative, 0.02)
	assert.Equal(t, 3, got.TotalAnalyzed)
	assert.Equal(t, 0.33, got.Neutral)
}

func TestSentimentTieIsNeutral(t *testing.T) {
	got := newEngine(t).Sentiment([]models.RawComment{comment("good but boring", 0, "")})
	assert.Equal(t, 1.0, got.Neutral)
}

func TestFrequentWords(t *testing.T) {
	comments := []models.RawComment{
		comment("Python is great, python rocks", 0, ""),
		comment("파이썬 강의 최고 파이썬", 0, ""),
		comment("I love python and the 파이썬 community", 0, ""),
	}

	words := newEngine(t).FrequentWords(comments)
	require.NotEmpty(t, words)
	assert.Equal(t, "python", words[0].Word)
	assert.Equal(t, 3, words[0].Count)
	assert.Equal(t, "파이썬", words[1].Word)
	assert.Equal(t, 3, words[1].Count)

	for i, w := range words {
		assert.GreaterOrEqual(t, w.Percentage, 0.0)
		assert.LessOrEqual(t, w.Percentage, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, words[i-1].Count, w.Count)
		}
		assert.NotContains(t, []string{"is", "the", "and", "i"}, w.Word)
	}
}

func TestFrequentWordsFoldsCase(t *testing.T) {
	comments := []models.RawComment{
		comment("The Go gopher", 0, ""),
		comment("the go GOPHER", 0, ""),
	}

	words := newEngine(t).FrequentWords(comments)
	require.Len(t, words, 2)
	assert.Equal(t, models.FrequentWord{Word: "go", Count: 2, Percentage: 50}, words[0])
	assert.Equal(t, models.FrequentWord{Word: "gopher", Count: 2, Percentage: 50}, words[1])
}

func TestFrequentWordsPercentage(t *testing.T) {
	comments := []models.RawComment{comment("alpha alpha beta", 0, "")}
	words := newEngine(t).FrequentWords(comments)
	require.Len(t, words, 2)
	assert.Equal(t, 66.7, words[0].Percentage)
	assert.Equal(t, 33.3, words[1].Percentage)
}

func TestFrequentWordsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("word")
		b.WriteByte(byte('a' + i%26))
		b.WriteByte(byte('a' + i/26))
		b.WriteByte(' ')
	}
	words := newEngine(t).FrequentWords([]models.RawComment{comment(b.String(), 0, "")})
	assert.Len(t, words, 20)
	assert.Equal(t, "wordaa", words[0].Word)
}

func TestViewerRequests(t *testing.T) {
	comments := []models.RawComment{
		comment("다음에는 자바 강의도 해주세요", 5, "kim"),
		comment("Please make a video about generics", 12, "lee"),
		comment("Nice video", 100, "park"),
		comment("I would love to see more on channels", 1, ""),
		comment("LOOKING FORWARD TO part 2", 7, "choi"),
	}

	got := newEngine(t).ViewerRequests(comments)
	require.Len(t, got, 4)
	assert.Equal(t, int64(12), got[0].LikeCount)
	assert.Equal(t, int64(7), got[1].LikeCount)
	assert.Equal(t, int64(5), got[2].LikeCount)
	assert.Equal(t, "익명", got[3].Author)
}

func TestViewerRequestsTruncatesAndCaps(t *testing.T) {
	long := strings.Repeat("가", 250) + " 해주세요"
	var comments []models.RawComment
	for i := 0; i < 15; i++ {
		comments = append(comments, comment(long, int64(i), "a"))
	}
	got := newEngine(t).ViewerRequests(comments)
	require.Len(t, got, 10)
	assert.Equal(t, int64(14), got[0].LikeCount)
	assert.Equal(t, 200, len([]rune(got[0].Text)))
}

func TestViewerQuestions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"question mark", "is this on github?", true},
		{"english interrogative", "How does the scheduler work", true},
		{"interrogative needs space", "Whatever you do, keep going", false},
		{"korean interrogative", "어떻게 설치하나요", true},
		{"too short", "why?", false},
		{"statement", "great explanation", false},
		{"surrounding whitespace", "   what editor is that   ", true},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ViewerQuestions([]models.RawComment{comment(tt.text, 1, "a")})
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestRequestAndQuestionOverlap(t *testing.T) {
	c := []models.RawComment{comment("Can you make a video on testing?", 3, "a")}
	e := newEngine(t)
	assert.Len(t, e.ViewerRequests(c), 1)
	assert.Len(t, e.ViewerQuestions(c), 1)
}

func TestTopComments(t *testing.T) {
	comments := []models.RawComment{
		comment("first", 1, "a"),
		comment("   ", 1000, "b"),
		comment("second", 50, "c"),
		comment("third", 50, "d"),
		comment("fourth", 10, "e"),
		comment("fifth", 5, "f"),
		comment("sixth", 2, "g"),
	}

	got := newEngine(t).TopComments(comments)
	require.Len(t, got, 5)
	texts := make([]string, len(got))
	for i, c := range got {
		texts[i] = c.Text
	}
	assert.Equal(t, []string{"second", "third", "fourth", "fifth", "sixth"}, texts)
}

func TestLexiconOverrides(t *testing.T) {
	lex := DefaultLexicon().WithOverrides(&config.LexiconConfig{
		PositiveWords:   []string{"sehr gut"},
		AnonymousAuthor: "anon",
	})
	assert.Equal(t, []string{"sehr gut"}, lex.PositiveWords)
	assert.Equal(t, DefaultLexicon().NegativeWords, lex.NegativeWords)

	e, err := NewEngine(lex)
	require.NoError(t, err)
	got := e.Sentiment([]models.RawComment{comment("Sehr gut!", 0, "")})
	assert.Equal(t, 1.0, got.Positive)

	q := e.ViewerQuestions([]models.RawComment{comment("what is this", 0, "")})
	require.Len(t, q, 1)
	assert.Equal(t, "anon", q[0].Author)
}

func TestNewEngineRejectsBadPattern(t *testing.T) {
	lex := DefaultLexicon()
	lex.RequestPatternsEn = []string{"please (make"}
	_, err := NewEngine(lex)
	assert.Error(t, err)
}
