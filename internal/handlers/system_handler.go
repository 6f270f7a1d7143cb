package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	AppName    = "Resume Screener API"
	AppVersion = "1.0.0"
)

// VersionFunc reports the OCR engine version, or why it cannot run.
type VersionFunc func() (string, error)

type SystemHandler struct {
	ocrVersion VersionFunc
}

func NewSystemHandler(ocrVersion VersionFunc) *SystemHandler {
	return &SystemHandler{ocrVersion: ocrVersion}
}

// HandleRoot handles GET /
func (h *SystemHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Resume Screener Backend is running!",
		"version": AppVersion,
		"endpoints": []string{
			"POST /upload_resume",
			"POST /match",
			"POST /match_multiple",
			"POST /resume_summary",
			"GET /check_tesseract",
			"GET /extractions/:id",
		},
	})
}

// HandlePing handles GET /ping
func (h *SystemHandler) HandlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleCheckTesseract handles GET /check_tesseract. A missing engine is
// reported in the body with status 200, which is what the front-end polls for.
func (h *SystemHandler) HandleCheckTesseract(c *fiber.Ctx) error {
	if h.ocrVersion == nil {
		return c.JSON(fiber.Map{"error": "ocr engine not configured"})
	}

	version, err := h.ocrVersion()
	if err != nil {
		return c.JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"tesseract_version": version})
}

// HandleMetrics serves the Prometheus default registry.
func (h *SystemHandler) HandleMetrics() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
