package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

// statusFor maps a service error to the HTTP status returned to clients.
func statusFor(err error) int {
	var (
		missing    *services.MissingInputError
		invalid    *services.InvalidInputError
		extraction *services.ExtractionError
		fiberErr   *fiber.Error
	)

	switch {
	case errors.As(err, &missing), errors.As(err, &invalid):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrExtractionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrPoolStopped):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &extraction):
		return fiber.StatusInternalServerError
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// ErrorHandler is the Fiber ErrorHandler for errors that escape a handler,
// including panics caught by the recover middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}
