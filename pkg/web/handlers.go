package web

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/virio-ai/go-translator/pkg/hub"
	"github.com/virio-ai/go-translator/pkg/telephony"
)

// handleRoot is a plain liveness string.
func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.SendString("Voice Translator server is up and running")
}

// handleHealth returns service health.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ok",
		"version":      s.version,
		"active_calls": s.store.Len(),
	})
}

// handleMetrics returns Prometheus-style plain text counters.
func (s *Server) handleMetrics(c *fiber.Ctx) error {
	stats := s.tracker.Stats()
	return c.SendString(fmt.Sprintf(`# HELP translator_active_calls Active call sessions
# TYPE translator_active_calls gauge
translator_active_calls %d

# HELP translator_events_total Webhook events handled
# TYPE translator_events_total counter
translator_events_total %d

# HELP translator_translations_total Completed translations
# TYPE translator_translations_total counter
translator_translations_total %d

# HELP translator_detections_total Language detection attempts
# TYPE translator_detections_total counter
translator_detections_total %d

# HELP translator_oracle_failures_total Oracle request failures
# TYPE translator_oracle_failures_total counter
translator_oracle_failures_total %d

# HELP translator_speak_failures_total Speech delivery failures
# TYPE translator_speak_failures_total counter
translator_speak_failures_total %d
`, s.store.Len(), stats.EventsHandled, stats.Translations, stats.Detections,
		stats.OracleFailures, stats.SpeakFailures))
}

// handleWebhook receives telephony events. The event source gets its
// acknowledgment on structural receipt; all downstream work (oracle,
// speech delivery) happens after the response, in a goroutine.
func (s *Server) handleWebhook(c *fiber.Ctx) error {
	var ev telephony.Event
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid event body",
		})
	}

	go s.tracker.HandleEvent(context.Background(), ev)

	return c.SendStatus(fiber.StatusOK)
}

// handleDebugCalls lists all tracked sessions, for operational
// inspection only.
func (s *Server) handleDebugCalls(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"activeCalls": s.store.Snapshot(),
	})
}

// handleEventsWS streams tracker activity to a websocket client.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	client := hub.NewClient(s.eventHub, c)
	client.Run() // Blocks until connection closes
}
