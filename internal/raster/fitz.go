// Package raster renders PDF pages to images with MuPDF.
package raster

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"alfredoptarigan/resume-screener/internal/services"
)

type fitzRasterizer struct{}

func NewFitzRasterizer() services.PageRasterizer {
	return fitzRasterizer{}
}

// Open implements services.PageRasterizer.
func (fitzRasterizer) Open(data []byte) (services.RasterDocument, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for rendering: %w", err)
	}

	return &fitzDocument{doc: doc}, nil
}

type fitzDocument struct {
	doc *fitz.Document
}

// RenderPNG implements services.RasterDocument.
func (d *fitzDocument) RenderPNG(pageIndex int, dpi float64) ([]byte, error) {
	if pageIndex < 0 || pageIndex >= d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range", pageIndex+1)
	}

	img, err := d.doc.ImagePNG(pageIndex, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageIndex+1, err)
	}

	return img, nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
