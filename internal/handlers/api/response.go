package api

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"ytinsight/internal/models"
	"ytinsight/internal/validation"
	"ytinsight/internal/youtube"
)

// quotaRetryAfter is advertised on 429 responses.
const quotaRetryAfter = time.Hour

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(models.APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.APIResponse{
		Success:   false,
		Error:     &message,
		Timestamp: time.Now().UTC(),
	})
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, youtube.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, youtube.ErrQuotaExceeded):
		return fiber.StatusTooManyRequests
	case errors.Is(err, youtube.ErrUpstream), errors.Is(err, youtube.ErrSessionClosed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes err through the envelope. Internal errors are logged and
// replaced by a generic message.
func fail(c fiber.Ctx, log *slog.Logger, err error) error {
	status := statusFor(err)
	switch status {
	case fiber.StatusTooManyRequests:
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(quotaRetryAfter.Seconds())))
		return jsonError(c, status, "YouTube API quota exceeded")
	case fiber.StatusBadGateway:
		log.Warn("upstream failure", slog.String("path", c.Path()), slog.Any("error", err))
		return jsonError(c, status, "YouTube API request failed")
	case fiber.StatusInternalServerError:
		log.Error("request failed", slog.String("path", c.Path()), slog.Any("error", err))
		return jsonError(c, status, "internal server error")
	case fiber.StatusUnprocessableEntity:
		return jsonError(c, status, validation.Message(err))
	default:
		return jsonError(c, status, err.Error())
	}
}
