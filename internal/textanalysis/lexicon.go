package textanalysis

import "ytinsight/internal/config"

// Lexicon is the language data the engine runs on. Every list can be
// replaced from the LEXICON_FILE YAML.
type Lexicon struct {
	StopWords     []string
	PositiveWords []string
	NegativeWords []string

	// RequestPatternsKo are matched against the original text.
	RequestPatternsKo []string
	// RequestPatternsEn are matched against the lower-cased text.
	RequestPatternsEn []string

	// QuestionWords must be followed by whitespace to open a question.
	QuestionWords []string
	// QuestionPrefixesKo open a question on their own.
	QuestionPrefixesKo []string

	AnonymousAuthor string
}

// DefaultLexicon returns the built-in Korean and English word lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		StopWords: []string{
			// Korean
			"이", "그", "저", "것", "수", "등", "들", "및", "에서", "으로",
			"하다", "있다", "되다", "하고", "하는", "할", "하면", "합니다",
			"입니다", "있습니다", "됩니다", "해요", "네요", "거든요", "이에요",
			"예요", "이네요", "에요",
			// English
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
			"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
			"be", "have", "has", "had", "do", "does", "did", "will", "would",
			"could", "should", "may", "might", "must", "shall", "can", "need",
			"it", "its", "this", "that", "these", "those", "i", "you", "he", "she",
			"we", "they", "what", "which", "who", "whom", "how", "when", "where",
			"why", "all", "each", "every", "both", "few", "more", "most", "other",
			"some", "such", "no", "not", "only", "same", "so", "than", "too",
			"very", "just", "also", "now", "here", "there", "if", "then", "my",
			"your", "his", "her", "our", "their", "me", "him", "us", "them",
		},
		PositiveWords: []string{
			"좋아요", "좋다", "좋네요", "최고", "대박", "감사", "추천",
			"재미있", "유익", "도움", "멋지", "훌륭", "완벽", "사랑",
			"좋은", "재미", "감사합니다",
			"good", "great", "amazing", "awesome", "love", "excellent",
			"fantastic", "wonderful", "best", "perfect", "helpful",
			"thanks", "thank", "nice", "cool", "incredible", "brilliant",
			"loved", "appreciate", "useful", "informative", "like", "liked",
		},
		NegativeWords: []string{
			"별로", "싫어", "실망", "아쉬", "나쁘", "최악", "짜증",
			"불만", "화나", "후회", "지루", "재미없",
			"bad", "terrible", "awful", "worst", "hate", "boring",
			"disappointing", "disappointed", "useless", "waste", "sucks",
			"poor", "horrible", "annoying", "stupid", "wrong", "dislike",
		},
		RequestPatternsKo: []string{
			`해주세요`,
			`해 주세요`,
			`부탁드려요`,
			`부탁합니다`,
			`기대됩니다`,
			`기대해요`,
			`올려주세요`,
			`해주시면`,
			`하면 좋겠`,
		},
		RequestPatternsEn: []string{
			`please\s+(make|do|show|upload|create|cover)`,
			`can\s+you\s+(make|do|show|please)`,
			`would\s+(love|like)\s+to\s+see`,
			`next\s+(video|time|episode)`,
			`more\s+(videos?|content|episodes?)\s+(about|on|like)`,
			`wish\s+you\s+(would|could)`,
			`should\s+(make|do|cover|try)`,
			`hope\s+(you|to\s+see)`,
			`looking\s+forward\s+to`,
			`waiting\s+for`,
			`need\s+(a\s+)?(video|tutorial|guide)`,
		},
		QuestionWords: []string{
			"what", "how", "why", "when", "where", "who", "which",
			"can", "could", "would", "is", "are", "do", "does", "did",
		},
		QuestionPrefixesKo: []string{"뭐", "어떻게", "왜", "언제", "어디", "누가", "무엇", "어떤"},
		AnonymousAuthor:    "익명",
	}
}

// WithOverrides replaces every list the YAML file sets. A nil config
// leaves the lexicon unchanged.
func (l Lexicon) WithOverrides(cfg *config.LexiconConfig) Lexicon {
	if cfg == nil {
		return l
	}
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&l.StopWords, cfg.StopWords)
	pick(&l.PositiveWords, cfg.PositiveWords)
	pick(&l.NegativeWords, cfg.NegativeWords)
	pick(&l.RequestPatternsKo, cfg.RequestPatternsKo)
	pick(&l.RequestPatternsEn, cfg.RequestPatternsEn)
	pick(&l.QuestionWords, cfg.QuestionWords)
	pick(&l.QuestionPrefixesKo, cfg.QuestionPrefixesKo)
	if cfg.AnonymousAuthor != "" {
		l.AnonymousAuthor = cfg.AnonymousAuthor
	}
	return l
}
