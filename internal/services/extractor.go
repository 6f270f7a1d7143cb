package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/metrics"
)

// OCRDPI is the resolution pages are rasterized at before OCR.
const OCRDPI = 300

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatText = "text"
)

// ErrOCRUnavailable is returned (wrapped) by an OCREngine that cannot run at
// all. It aborts the whole document instead of skipping a page.
var ErrOCRUnavailable = errors.New("ocr engine unavailable")

// Document is an uploaded file held in memory for a single request.
type Document struct {
	Filename string
	Data     []byte
}

// ExtractionResult is the text of a document plus what it took to get it.
type ExtractionResult struct {
	Text      string
	Format    string
	PageCount int
	OCRPages  int
}

// PageRasterizer opens a PDF for page rendering. Implementations must not
// keep state between Open calls.
type PageRasterizer interface {
	Open(data []byte) (RasterDocument, error)
}

type RasterDocument interface {
	// RenderPNG renders the zero-based page at dpi and returns PNG bytes.
	RenderPNG(pageIndex int, dpi float64) ([]byte, error)
	Close() error
}

type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

type ExtractorService interface {
	Extract(ctx context.Context, doc *Document) (string, error)
	ExtractDocument(ctx context.Context, doc *Document) (*ExtractionResult, error)
}

type extractorService struct {
	textLayer  PDFTextLayer
	rasterizer PageRasterizer
	ocr        OCREngine
	log        *zap.Logger
}

func NewExtractorService(textLayer PDFTextLayer, rasterizer PageRasterizer, ocr OCREngine, log *zap.Logger) ExtractorService {
	return &extractorService{
		textLayer:  textLayer,
		rasterizer: rasterizer,
		ocr:        ocr,
		log:        logger.OrNop(log),
	}
}

// DetectFormat picks the extraction strategy from the file name suffix.
func DetectFormat(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return FormatPDF
	case strings.HasSuffix(name, ".docx"):
		return FormatDOCX
	default:
		return FormatText
	}
}

// Extract implements ExtractorService.
func (e *extractorService) Extract(ctx context.Context, doc *Document) (string, error) {
	result, err := e.ExtractDocument(ctx, doc)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// ExtractDocument implements ExtractorService.
func (e *extractorService) ExtractDocument(ctx context.Context, doc *Document) (*ExtractionResult, error) {
	if doc == nil {
		return nil, &MissingInputError{Field: "document"}
	}

	format := DetectFormat(doc.Filename)
	log := e.log.With(logger.DocumentFields(doc.Filename, format)...)
	start := time.Now()

	var (
		result *ExtractionResult
		err    error
	)
	switch format {
	case FormatPDF:
		result, err = e.extractPDF(ctx, doc.Data, log)
	case FormatDOCX:
		result, err = e.extractDocx(doc.Data)
	default:
		result = &ExtractionResult{Text: decodeText(doc.Data), Format: FormatText}
	}

	metrics.ExtractionDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues(format, "failed").Inc()
		log.Warn("extraction failed", zap.Error(err))

		var extractionErr *ExtractionError
		if !errors.As(err, &extractionErr) {
			err = &ExtractionError{Message: format, Cause: err}
		}
		return nil, err
	}

	metrics.ExtractionsTotal.WithLabelValues(format, "completed").Inc()
	log.Debug("extraction completed",
		zap.Int("pages", result.PageCount),
		zap.Int("ocr_pages", result.OCRPages),
		zap.Int("chars", len(result.Text)),
		zap.Duration("took", time.Since(start)),
	)

	return result, nil
}

func (e *extractorService) extractPDF(ctx context.Context, data []byte, log *zap.Logger) (*ExtractionResult, error) {
	pageTexts, err := e.textLayer.PageTexts(data)
	if err != nil {
		return nil, &ExtractionError{Message: "corrupt PDF", Cause: err}
	}

	var (
		textBuilder strings.Builder
		raster      RasterDocument
		ocrPages    int
	)
	defer func() {
		if raster != nil {
			raster.Close()
		}
	}()

	for pageIndex, pageText := range pageTexts {
		if err := ctx.Err(); err != nil {
			return nil, &ExtractionError{Message: "cancelled", Cause: err}
		}

		if strings.TrimSpace(pageText) != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
			continue
		}

		// No text layer on this page: render it and OCR the image.
		if raster == nil {
			raster, err = e.rasterizer.Open(data)
			if err != nil {
				return nil, &ExtractionError{Message: "rasterizer unavailable", Cause: err}
			}
		}

		ocrPages++
		ocrText, err := e.ocrPage(ctx, raster, pageIndex)
		if err != nil {
			if errors.Is(err, ErrOCRUnavailable) {
				metrics.OCRPagesTotal.WithLabelValues("unavailable").Inc()
				return nil, &ExtractionError{Message: "ocr engine unavailable", Cause: err}
			}
			metrics.OCRPagesTotal.WithLabelValues("failed").Inc()
			log.Warn("page skipped", zap.Int("page", pageIndex+1), zap.Error(err))
			continue
		}

		if strings.TrimSpace(ocrText) == "" {
			metrics.OCRPagesTotal.WithLabelValues("empty").Inc()
			continue
		}

		metrics.OCRPagesTotal.WithLabelValues("recognized").Inc()
		textBuilder.WriteString(ocrText)
		textBuilder.WriteString("\n")
	}

	return &ExtractionResult{
		Text:      textBuilder.String(),
		Format:    FormatPDF,
		PageCount: len(pageTexts),
		OCRPages:  ocrPages,
	}, nil
}

func (e *extractorService) ocrPage(ctx context.Context, raster RasterDocument, pageIndex int) (string, error) {
	image, err := raster.RenderPNG(pageIndex, OCRDPI)
	if err != nil {
		return "", fmt.Errorf("failed to render page %d: %w", pageIndex+1, err)
	}

	return e.ocr.Recognize(ctx, image)
}

func (e *extractorService) extractDocx(data []byte) (*ExtractionResult, error) {
	text, err := extractDocxText(data)
	if err != nil {
		return nil, &ExtractionError{Message: "corrupt DOCX", Cause: err}
	}

	return &ExtractionResult{Text: text, Format: FormatDOCX}, nil
}

// decodeText decodes bytes as UTF-8, dropping invalid sequences.
func decodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
