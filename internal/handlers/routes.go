package handlers

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Upload *UploadHandler
	Match  *MatchHandler
	Result *ResultHandler
	System *SystemHandler
}

// RegisterRoutes mounts every route at the root path the front-end expects.
func RegisterRoutes(app *fiber.App, h *Handlers) {
	app.Get("/", h.System.HandleRoot)
	app.Get("/ping", h.System.HandlePing)
	app.Get("/check_tesseract", h.System.HandleCheckTesseract)
	app.Get("/metrics", h.System.HandleMetrics())

	app.Post("/upload_resume", h.Upload.HandleUpload)
	app.Post("/match", h.Match.HandleMatch)
	app.Post("/match_multiple", h.Match.HandleMatchMultiple)
	app.Post("/resume_summary", h.Match.HandleSummary)

	app.Get("/extractions/:id", h.Result.HandleGetExtraction)
}
