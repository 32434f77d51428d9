package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"ytinsight/internal/config"
	"ytinsight/internal/models"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config
	log *slog.Logger
}

// New creates a new server with middleware configured. limiterStorage may be
// nil, in which case the rate limiter keeps its counters in memory.
func New(cfg *config.Config, limiterStorage fiber.Storage, log *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName: "ytinsight",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			} else {
				log.Error("unhandled error", slog.String("path", c.Path()), slog.Any("error", err))
			}

			return c.Status(code).JSON(models.APIResponse{
				Success:   false,
				Error:     &message,
				Timestamp: time.Now().UTC(),
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// CORS middleware
	corsOrigins := cfg.BaseURL
	if cfg.CORSOrigins != "" {
		corsOrigins = cfg.CORSOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(corsOrigins, ","),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))

	// Rate limiting middleware, per IP per minute
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				message := "Rate limit exceeded. Please try again later."
				return c.Status(fiber.StatusTooManyRequests).JSON(models.APIResponse{
					Success:   false,
					Error:     &message,
					Timestamp: time.Now().UTC(),
				})
			},
			Storage: limiterStorage,
		}))
	}

	return &Server{
		App: app,
		Cfg: cfg,
		log: log,
	}
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	s.log.Info("starting server", slog.String("addr", s.Cfg.ServerAddr))
	return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
