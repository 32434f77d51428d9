package api

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"ytinsight/internal/models"
)

// CommentAnalyzer collects and analyzes a video's comments.
type CommentAnalyzer interface {
	Collect(ctx context.Context, videoURL string) (*models.CommentAnalysisResult, error)
}

// CommentHandler serves comment analysis.
type CommentHandler struct {
	collector CommentAnalyzer
	log       *slog.Logger
}

// NewCommentHandler creates a new API comment handler.
func NewCommentHandler(collector CommentAnalyzer, log *slog.Logger) *CommentHandler {
	return &CommentHandler{collector: collector, log: log}
}

// Analyze handles POST /api/v1/comments/analyze.
func (h *CommentHandler) Analyze(c fiber.Ctx) error {
	var body models.CommentAnalyzeRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.collector.Collect(c.Context(), body.VideoURL)
	if err != nil {
		return fail(c, h.log, err)
	}
	return jsonSuccess(c, result)
}
