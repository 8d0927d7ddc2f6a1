package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleHistory(c *fiber.Ctx) error {
	return c.JSON(s.history.Entries())
}

func (s *Server) handleClearHistory(c *fiber.Ctx) error {
	s.history.Clear()
	return c.JSON(fiber.Map{"status": "cleared"})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": s.version,
		"apis": fiber.Map{
			"translator": s.backends.Translator,
			"dictionary": s.backends.Dictionary,
			"tts":        s.backends.TTS,
		},
		"uptime": int64(time.Since(s.startedAt).Seconds()),
	})
}
