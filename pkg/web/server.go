// Package web provides the HTTP surface of the translator service:
// the telephony webhook, health and metrics endpoints, and the
// read-only debug views over active call sessions.
package web

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/virio-ai/go-translator/pkg/hub"
	"github.com/virio-ai/go-translator/pkg/session"
	"github.com/virio-ai/go-translator/pkg/tracker"
)

// Config configures the web server.
type Config struct {
	// Port to listen on.
	Port string

	// Version string reported on /health.
	Version string

	// Debug enables request logging.
	Debug bool

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Server is the translator HTTP server.
type Server struct {
	app     *fiber.App
	port    string
	version string

	tracker  *tracker.Tracker
	store    *session.Store
	eventHub *hub.Hub
	logger   *slog.Logger
}

// NewServer creates the HTTP server around an existing tracker and
// session store. The tracker's activity feed is wired into the
// /ws/events broadcast hub.
func NewServer(cfg Config, tr *tracker.Tracker, store *session.Store) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		port:     cfg.Port,
		version:  cfg.Version,
		tracker:  tr,
		store:    store,
		eventHub: hub.New("events", logger),
		logger:   logger.With("component", "web"),
	}

	tr.OnActivity = func(a tracker.Activity) {
		if err := s.eventHub.BroadcastJSON(a); err != nil {
			s.logger.Warn("broadcast activity failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               "voice-translator",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	if cfg.Debug {
		app.Use(fiberlogger.New())
	}

	app.Get("/", s.handleRoot)
	app.Get("/health", s.handleHealth)
	app.Get("/metrics", s.handleMetrics)
	app.Post("/vapi/events", s.handleWebhook)
	app.Get("/debug/calls", s.handleDebugCalls)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Start runs the event hub and listens for HTTP traffic. Blocks until
// the server shuts down.
func (s *Server) Start() error {
	go s.eventHub.Run()
	s.logger.Info("server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
