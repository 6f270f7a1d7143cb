// Package ocr recognizes text in rendered page images with Tesseract.
package ocr

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"alfredoptarigan/resume-screener/internal/services"
)

type tesseractEngine struct {
	language string
}

// NewTesseractEngine returns an OCR engine for the given Tesseract language
// code ("eng", "deu+eng", ...). Each call to Recognize uses its own client,
// so the engine is safe for concurrent use.
func NewTesseractEngine(language string) services.OCREngine {
	if language == "" {
		language = "eng"
	}
	return &tesseractEngine{language: language}
}

// Recognize implements services.OCREngine.
func (e *tesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(e.language, "+")...); err != nil {
		return "", fmt.Errorf("%w: %v", services.ErrOCRUnavailable, err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to load page image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", classify(err)
	}

	return text, nil
}

// classify marks engine start-up failures (missing tessdata, unknown
// language) as ErrOCRUnavailable. Anything else is a per-page failure.
func classify(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "initialize") {
		return fmt.Errorf("%w: %v", services.ErrOCRUnavailable, err)
	}
	return fmt.Errorf("tesseract failed: %w", err)
}

// Version reports the linked Tesseract version in the form of the first line
// of `tesseract --version`. It fails when no trained data for language is
// installed.
func Version(language string) (string, error) {
	languages, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return "", fmt.Errorf("failed to list tesseract languages: %w", err)
	}

	for _, lang := range strings.Split(language, "+") {
		if !slices.Contains(languages, lang) {
			return "", fmt.Errorf("tesseract language data %q not installed", lang)
		}
	}

	return "tesseract " + gosseract.Version(), nil
}
