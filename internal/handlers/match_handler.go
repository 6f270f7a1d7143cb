package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type MatchHandler struct {
	scorer   services.ScorerService
	validate *validator.Validate
	skills   []string
}

func NewMatchHandler(scorer services.ScorerService, validate *validator.Validate, skills []string) *MatchHandler {
	if validate == nil {
		validate = validator.New()
	}

	return &MatchHandler{
		scorer:   scorer,
		validate: validate,
		skills:   skills,
	}
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume or job description missing",
		})
	}

	result, err := h.scorer.Score(req.Resume, req.Job)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.MatchResponse{
		Score:    result.Score,
		Keywords: result.Keywords,
	})
}

// HandleMatchMultiple handles POST /match_multiple
func (h *MatchHandler) HandleMatchMultiple(c *fiber.Ctx) error {
	var req models.MatchMultipleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume or job descriptions missing",
		})
	}

	results, err := h.scorer.ScoreMultiple(c.UserContext(), req.Resume, req.Jobs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.MatchMultipleResponse{Results: results})
}

// HandleSummary handles POST /resume_summary
func (h *MatchHandler) HandleSummary(c *fiber.Ctx) error {
	var req models.SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume text missing",
		})
	}

	return c.JSON(models.SummaryResponse{
		Summary: services.Summarize(req.Resume, h.skills),
	})
}
