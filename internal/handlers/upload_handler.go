package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

type UploadHandler struct {
	pool        services.ExtractionPool
	audit       repositories.ExtractionRepository
	maxFileSize int64
	log         *zap.Logger
}

func NewUploadHandler(
	pool services.ExtractionPool,
	audit repositories.ExtractionRepository,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	if audit == nil {
		audit = repositories.NewNoopExtractionRepository()
	}

	return &UploadHandler{
		pool:        pool,
		audit:       audit,
		maxFileSize: maxFileSize,
		log:         logger.OrNop(log),
	}
}

// HandleUpload handles POST /upload_resume
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	data, err := readFormFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read resume file: %v", err),
		})
	}

	doc := &services.Document{Filename: file.Filename, Data: data}

	start := time.Now()
	result, err := h.pool.Submit(c.UserContext(), doc)
	extractionID := h.record(doc, result, err, time.Since(start))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.UploadResponse{
		ResumeText:   result.Text,
		ExtractionID: extractionID,
	})
}

// record writes the audit row for one upload and returns its id, or "" when
// nothing was stored.
func (h *UploadHandler) record(doc *services.Document, result *services.ExtractionResult, extractErr error, took time.Duration) string {
	extraction := &models.Extraction{
		Filename:   doc.Filename,
		Format:     services.DetectFormat(doc.Filename),
		SizeBytes:  int64(len(doc.Data)),
		Status:     models.StatusCompleted,
		DurationMS: took.Milliseconds(),
	}
	if result != nil {
		extraction.PageCount = result.PageCount
		extraction.OCRPages = result.OCRPages
	}
	if extractErr != nil {
		msg := extractErr.Error()
		extraction.Status = models.StatusFailed
		extraction.ErrorMessage = &msg
	}

	if err := h.audit.Create(extraction); err != nil {
		if !errors.Is(err, repositories.ErrAuditDisabled) {
			h.log.Warn("failed to record extraction",
				append(logger.DocumentFields(doc.Filename, extraction.Format), zap.Error(err))...)
		}
		return ""
	}

	h.log.Debug("extraction recorded",
		zap.String(logger.FieldExtractionID, extraction.ID.String()),
		zap.String(logger.FieldFilename, doc.Filename),
	)

	return extraction.ID.String()
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
