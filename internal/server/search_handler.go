package server

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/lingodex/lingodex/internal/language"
	"github.com/lingodex/lingodex/internal/search"
)

type searchRequest struct {
	Word       string `json:"word"`
	TargetLang string `json:"target_lang"`
}

func (s *Server) handleLanguages(c *fiber.Ctx) error {
	return c.JSON(language.Supported)
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request must be JSON"})
	}
	if req.TargetLang == "" {
		req.TargetLang = "en"
	}

	result, err := s.searcher.Search(c.Context(), req.Word, req.TargetLang)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrEmptyWord):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Word is required"})
		case errors.Is(err, search.ErrUnsupportedLanguage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Unsupported language: %s", req.TargetLang),
			})
		default:
			s.logger.WithField("word", req.Word).WithError(err).Error("search failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
		}
	}
	return c.JSON(result)
}
