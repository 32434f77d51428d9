package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	ErrMissingAPIKey    = errors.New("youtube api key is not configured")
	ErrNotFound         = errors.New("not found")
	ErrQuotaExceeded    = errors.New("youtube api quota exceeded")
	ErrUpstream         = errors.New("youtube api error")
	ErrSessionClosed    = errors.New("youtube session closed")
	errCommentsDisabled = errors.New("comments disabled")
)

// Reasons reported in googleapi.Error.Errors that indicate quota exhaustion.
var quotaReasons = map[string]bool{
	"quotaExceeded":         true,
	"dailyLimitExceeded":    true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// classify maps a raw client error onto the package's sentinel errors.
// Context cancellation passes through untouched so callers can tell an
// aborted request from an upstream failure.
func classify(call string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, item := range apiErr.Errors {
			if quotaReasons[item.Reason] {
				return fmt.Errorf("%s: %w", call, ErrQuotaExceeded)
			}
			if item.Reason == "commentsDisabled" {
				return fmt.Errorf("%s: %w", call, errCommentsDisabled)
			}
		}
		if apiErr.Code == http.StatusNotFound {
			return fmt.Errorf("%s: %w", call, ErrNotFound)
		}
		return fmt.Errorf("%s: %w: status %d: %s", call, ErrUpstream, apiErr.Code, apiErr.Message)
	}

	return fmt.Errorf("%s: %w: %w", call, ErrUpstream, err)
}

// outcome labels a finished call for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, errCommentsDisabled):
		return "comments_disabled"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
