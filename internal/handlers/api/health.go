package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"ytinsight/internal/models"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Pinger checks the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health.
type HealthHandler struct {
	store Pinger
	log   *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store Pinger, log *slog.Logger) *HealthHandler {
	return &HealthHandler{store: store, log: log}
}

// Check handles GET /health. A failed ping yields 503 with the same body shape.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	resp := models.HealthResponse{
		Status:   "healthy",
		Service:  "ytinsight",
		Version:  Version,
		Database: "connected",
	}
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("health: store ping failed", slog.Any("error", err))
		resp.Status = "unhealthy"
		resp.Database = "unreachable"
		c.Status(fiber.StatusServiceUnavailable)
		return c.JSON(models.APIResponse{Success: false, Data: resp, Timestamp: time.Now().UTC()})
	}
	return jsonSuccess(c, resp)
}
