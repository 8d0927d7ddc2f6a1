// Package server exposes the HTTP API.
package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/lingodex/lingodex/internal/history"
	"github.com/lingodex/lingodex/internal/ratelimit"
	"github.com/lingodex/lingodex/internal/search"
)

// Searcher runs the word-lookup flow.
type Searcher interface {
	Search(ctx context.Context, word, targetLang string) (*search.Result, error)
}

// Pronouncer synthesizes pronunciation audio.
type Pronouncer interface {
	Synthesize(ctx context.Context, text, lang string) (string, error)
}

// Recognizer transcribes an audio file to text.
type Recognizer interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// RateLimits configures the request windows applied per client address.
type RateLimits struct {
	SearchPerMinute int
	PerHour         int
	PerDay          int
}

// Backends reports which external services were initialized, for /api/health.
type Backends struct {
	Translator bool
	Dictionary bool
	TTS        bool
}

// Server wires the fiber app and the route handlers.
type Server struct {
	app           *fiber.App
	searcher      Searcher
	pronouncer    Pronouncer
	recognizer    Recognizer
	history       *history.Log
	searchLimiter *ratelimit.Limiter
	hourLimiter   *ratelimit.Limiter
	dayLimiter    *ratelimit.Limiter
	backends      Backends
	version       string
	startedAt     time.Time
	logger        *logrus.Logger
}

func New(
	searcher Searcher,
	pronouncer Pronouncer,
	recognizer Recognizer,
	historyLog *history.Log,
	limits RateLimits,
	backends Backends,
	version string,
	allowedOrigins []string,
	log *logrus.Logger,
) *Server {
	s := &Server{
		searcher:      searcher,
		pronouncer:    pronouncer,
		recognizer:    recognizer,
		history:       historyLog,
		searchLimiter: ratelimit.NewLimiter(limits.SearchPerMinute, time.Minute),
		hourLimiter:   ratelimit.NewLimiter(limits.PerHour, time.Hour),
		dayLimiter:    ratelimit.NewLimiter(limits.PerDay, 24*time.Hour),
		backends:      backends,
		version:       version,
		startedAt:     time.Now(),
		logger:        log,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(allowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", s.globalRateLimit)
	api.Get("/languages", s.handleLanguages)
	api.Post("/search", s.searchRateLimit, s.handleSearch)
	api.Post("/speech-to-text", s.handleSpeechToText)
	api.Post("/pronounce", s.handlePronounce)
	api.Post("/pronounce-batch", s.handlePronounceBatch)
	api.Get("/history", s.handleHistory)
	api.Post("/clear-history", s.handleClearHistory)
	api.Get("/health", s.handleHealth)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})

	s.app = app
	return s
}

// App exposes the fiber app for serving and for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
}

func (s *Server) globalRateLimit(c *fiber.Ctx) error {
	client := c.IP()
	if !s.hourLimiter.Allow(client) || !s.dayLimiter.Allow(client) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Rate limit exceeded"})
	}
	return c.Next()
}

func (s *Server) searchRateLimit(c *fiber.Ctx) error {
	if !s.searchLimiter.Allow(c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Rate limit exceeded"})
	}
	return c.Next()
}
