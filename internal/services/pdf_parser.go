package services

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFTextLayer reads the embedded text layer of a PDF, one entry per page in
// page order. A page without a readable text layer yields "".
type PDFTextLayer interface {
	PageTexts(data []byte) ([]string, error)
}

type pdfTextLayer struct{}

func NewPDFTextLayer() PDFTextLayer {
	return &pdfTextLayer{}
}

// PageTexts implements PDFTextLayer.
func (p *pdfTextLayer) PageTexts(data []byte) (texts []string, err error) {
	// ledongthuc/pdf panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			texts = nil
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := r.NumPage()
	texts = make([]string, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Undecodable text layer: left empty so the page goes to OCR.
			continue
		}

		texts[pageIndex-1] = text
	}

	return texts, nil
}
