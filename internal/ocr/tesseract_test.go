package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-screener/internal/services"
)

func TestClassify(t *testing.T) {
	initErr := classify(errors.New("failed to initialize TessBaseAPI with code -1: Error opening data file"))
	assert.ErrorIs(t, initErr, services.ErrOCRUnavailable)

	pageErr := classify(errors.New("Image too small to scale"))
	assert.NotErrorIs(t, pageErr, services.ErrOCRUnavailable)
	assert.Contains(t, pageErr.Error(), "tesseract failed")
}

func TestRecognize_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTesseractEngine("").Recognize(ctx, []byte("png"))

	assert.ErrorIs(t, err, context.Canceled)
}
