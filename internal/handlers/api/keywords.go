package api

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"ytinsight/internal/models"
)

// KeywordAnalyzer analyzes a single keyword.
type KeywordAnalyzer interface {
	Analyze(ctx context.Context, keyword string) (*models.KeywordAnalysisResult, error)
}

// KeywordHandler serves keyword analysis.
type KeywordHandler struct {
	analyzer KeywordAnalyzer
	log      *slog.Logger
}

// NewKeywordHandler creates a new API keyword handler.
func NewKeywordHandler(analyzer KeywordAnalyzer, log *slog.Logger) *KeywordHandler {
	return &KeywordHandler{analyzer: analyzer, log: log}
}

// Analyze handles POST /api/v1/keywords/analyze.
func (h *KeywordHandler) Analyze(c fiber.Ctx) error {
	var body models.KeywordAnalyzeRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.analyzer.Analyze(c.Context(), body.Keyword)
	if err != nil {
		return fail(c, h.log, err)
	}
	return jsonSuccess(c, result)
}
