package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lingodex/lingodex/internal/language"
	"github.com/lingodex/lingodex/internal/search"
	"github.com/lingodex/lingodex/internal/speech"
)

// maxBatchItems caps how many batch entries are processed; the rest are
// ignored outright.
const maxBatchItems = 10

type pronounceRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func (s *Server) handlePronounce(c *fiber.Ctx) error {
	var req pronounceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request must be JSON"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Text is required"})
	}
	if req.Lang == "" {
		req.Lang = "en"
	}
	if !language.IsSupported(req.Lang) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unsupported language: %s", req.Lang),
		})
	}

	text := search.Truncate(req.Text)
	audio, err := s.pronouncer.Synthesize(c.Context(), text, req.Lang)
	if err == nil && audio != "" {
		return c.JSON(fiber.Map{
			"audio":       audio,
			"status":      "success",
			"language":    req.Lang,
			"text_length": len([]rune(text)),
		})
	}
	if err != nil {
		s.logger.WithField("lang", req.Lang).WithError(err).Error("pronunciation synthesis failed")
	}

	// non-English synthesis that failed on plain ASCII input gets a second
	// chance in English
	if req.Lang != "en" && isASCII(req.Text) {
		audio, fallbackErr := s.pronouncer.Synthesize(c.Context(), text, "en")
		if fallbackErr == nil && audio != "" {
			return c.JSON(fiber.Map{
				"audio":       audio,
				"status":      "success_fallback",
				"language":    "en",
				"text_length": len([]rune(text)),
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate pronunciation"})
}

type batchItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type batchRequest struct {
	Items []batchItem `json:"items"`
}

type batchResult struct {
	Audio    string `json:"audio"`
	Status   string `json:"status"`
	Language string `json:"language"`
}

func (s *Server) handlePronounceBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Request must be JSON"})
	}

	items := req.Items
	if len(items) > maxBatchItems {
		items = items[:maxBatchItems]
	}

	results := make(map[string]batchResult)
	batchErrors := make([]string, 0)

	for i, item := range items {
		id := item.ID
		if id == "" {
			id = strconv.Itoa(i)
		}
		lang := item.Lang
		if lang == "" {
			lang = "en"
		}

		if item.Text == "" {
			batchErrors = append(batchErrors, fmt.Sprintf("%s: text is required", id))
			continue
		}
		if !language.IsSupported(lang) {
			batchErrors = append(batchErrors, fmt.Sprintf("%s: unsupported language: %s", id, lang))
			continue
		}

		audio, err := s.pronouncer.Synthesize(c.Context(), search.Truncate(item.Text), lang)
		if err != nil || audio == "" {
			if err != nil {
				s.logger.WithField("id", id).WithError(err).Error("batch pronunciation failed")
			}
			batchErrors = append(batchErrors, fmt.Sprintf("%s: failed to generate pronunciation", id))
			continue
		}
		results[id] = batchResult{Audio: audio, Status: "success", Language: lang}
	}

	return c.JSON(fiber.Map{
		"results":       results,
		"errors":        batchErrors,
		"success_count": len(results),
		"error_count":   len(batchErrors),
	})
}

func (s *Server) handleSpeechToText(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No audio file provided"})
	}

	// unique scratch name so concurrent uploads never collide
	scratchPath := filepath.Join(os.TempDir(), fmt.Sprintf("lingodex_stt_%s.wav", uuid.NewString()))
	if err := c.SaveFile(file, scratchPath); err != nil {
		s.logger.WithError(err).Error("could not save uploaded audio")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	defer func() {
		if err := os.Remove(scratchPath); err != nil {
			s.logger.WithField("path", scratchPath).WithError(err).Warn("could not remove scratch audio file")
		}
	}()

	text, err := s.recognizer.Transcribe(c.Context(), scratchPath)
	if err != nil {
		switch {
		case errors.Is(err, speech.ErrUnintelligible):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not understand audio"})
		case errors.Is(err, speech.ErrBackend):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Speech recognition service unavailable"})
		default:
			s.logger.WithError(err).Error("speech to text failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
		}
	}
	return c.JSON(fiber.Map{"text": text})
}

func isASCII(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
	}
	return true
}
