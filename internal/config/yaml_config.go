package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LexiconConfig represents the structure of the lexicon YAML file.
// Word lists are easier to curate in YAML than in env vars. Any list left
// empty keeps the built-in default.
type LexiconConfig struct {
	StopWords          []string         `yaml:"stop_words"`
	PositiveWords      []string         `yaml:"positive_words"`
	NegativeWords      []string         `yaml:"negative_words"`
	RequestPatternsKo  []string         `yaml:"request_patterns_ko"`
	RequestPatternsEn  []string         `yaml:"request_patterns_en"`
	QuestionWords      []string         `yaml:"question_words"`
	QuestionPrefixesKo []string         `yaml:"question_prefixes_ko"`
	AnonymousAuthor    string           `yaml:"anonymous_author,omitempty"`
	FallbackSuffixes   FallbackSuffixes `yaml:"fallback_suffixes"`
}

// FallbackSuffixes are the templates appended to a keyword when mined
// related phrases run short, split by the script of the keyword.
type FallbackSuffixes struct {
	Hangul []string `yaml:"hangul"`
	Latin  []string `yaml:"latin"`
}

// LoadLexicon loads the lexicon override file at path.
// Returns nil without error if the file doesn't exist.
func LoadLexicon(path string) (*LexiconConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Lexicon file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg LexiconConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
