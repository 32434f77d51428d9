package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ytinsight/internal/handlers/api"
)

// Handlers groups the API handlers the routes dispatch to.
type Handlers struct {
	Keywords *api.KeywordHandler
	Comments *api.CommentHandler
	YouTube  *api.YouTubeHandler
	Health   *api.HealthHandler
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(h Handlers) {
	s.App.Get("/health", h.Health.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := s.App.Group("/api/v1")
	v1.Post("/keywords/analyze", h.Keywords.Analyze)
	v1.Post("/comments/analyze", h.Comments.Analyze)
	v1.Get("/youtube/youtubers/ranking", h.YouTube.Ranking)
	v1.Get("/youtube/quota", h.YouTube.Quota)
}
