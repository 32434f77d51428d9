package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ErrInvalidInput marks client-side validation failures.
var ErrInvalidInput = errors.New("invalid input")

const (
	// MaxKeywordLength is the longest keyword accepted for analysis, in characters.
	MaxKeywordLength = 100
	// MaxVideoURLLength is the longest video URL accepted, in characters.
	MaxVideoURLLength = 500
)

// Invalid wraps a human-readable message as an ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Message returns the human-readable part of an ErrInvalidInput error.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
}

// NormalizeKeyword trims surrounding whitespace. Case is preserved so the
// cache key matches exactly what the caller asked for.
func NormalizeKeyword(keyword string) string {
	return strings.TrimSpace(keyword)
}

// ValidateKeyword checks a normalized keyword.
func ValidateKeyword(keyword string) error {
	if keyword == "" {
		return Invalid("keyword cannot be empty or whitespace only")
	}
	if utf8.RuneCountInString(keyword) > MaxKeywordLength {
		return Invalid("keyword must be at most %d characters", MaxKeywordLength)
	}
	return nil
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	// Parse the URL
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	// Ensure host is present
	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateVideoURL performs the request-level checks on a video URL before
// the video id is extracted.
func ValidateVideoURL(videoURL string) error {
	videoURL = strings.TrimSpace(videoURL)
	if utf8.RuneCountInString(videoURL) > MaxVideoURLLength {
		return Invalid("video URL must be at most %d characters", MaxVideoURLLength)
	}
	if ok, msg := ValidateURL(videoURL); !ok {
		return Invalid("%s", msg)
	}
	return nil
}

// IntInRange parses an optional integer query value, falling back to def when
// empty, and rejects values outside [min, max].
func IntInRange(name, raw string, def, min, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	var v int
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil || fmt.Sprint(v) != raw {
		return 0, Invalid("%s must be an integer", name)
	}
	if v < min || v > max {
		return 0, Invalid("%s must be between %d and %d", name, min, max)
	}
	return v, nil
}
