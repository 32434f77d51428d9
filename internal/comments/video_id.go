package comments

import (
	"regexp"

	"ytinsight/internal/validation"
)

// VideoIDLength is the length of every YouTube video id.
const VideoIDLength = 11

// Accepted URL shapes. The scheme is mandatory; www. and m. are optional
// where YouTube serves them.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:www\.|m\.)?youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`^https?://(?:www\.)?youtu\.be/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`^https?://(?:www\.|m\.)?youtube\.com/embed/([A-Za-z0-9_-]+)`),
}

// ExtractVideoID returns the video id in a watch, short-link, embed or
// mobile URL.
func ExtractVideoID(videoURL string) (string, error) {
	for _, re := range videoURLPatterns {
		m := re.FindStringSubmatch(videoURL)
		if m == nil {
			continue
		}
		if len(m[1]) != VideoIDLength {
			return "", validation.Invalid("video id must be %d characters, got %d", VideoIDLength, len(m[1]))
		}
		return m[1], nil
	}
	return "", validation.Invalid("unrecognized YouTube video URL")
}
