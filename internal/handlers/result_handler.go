package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/repositories"
)

type ResultHandler struct {
	audit repositories.ExtractionRepository
}

func NewResultHandler(audit repositories.ExtractionRepository) *ResultHandler {
	if audit == nil {
		audit = repositories.NewNoopExtractionRepository()
	}

	return &ResultHandler{
		audit: audit,
	}
}

// HandleGetExtraction handles GET /extractions/:id
func (h *ResultHandler) HandleGetExtraction(c *fiber.Ctx) error {
	extractionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid extraction ID format",
		})
	}

	extraction, err := h.audit.FindByID(extractionID)
	if err != nil {
		if errors.Is(err, repositories.ErrExtractionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Extraction not found",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(extraction)
}
