package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxMainPart = "word/document.xml"

// docxBody keeps only what extraction needs: top-level paragraphs and
// top-level tables. Their relative order in the body is not kept.
type docxBody struct {
	Paragraphs []docxParagraph `xml:"body>p"`
	Tables     []docxTable     `xml:"body>tbl"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

// Text joins the cell's own paragraphs. Nested tables are not included.
func (c docxCell) Text() string {
	parts := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		parts[i] = p.Text
	}
	return strings.Join(parts, "\n")
}

type docxParagraph struct {
	Text string
}

// UnmarshalXML collects run text of the paragraph. Text inside text boxes
// (paragraphs nested in drawings) and paragraph properties is skipped.
func (p *docxParagraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth, runDepth, nestedParagraphs := 0, 0, 0
	inText := false

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			inRun := runDepth > 0 && nestedParagraphs == 0
			switch t.Name.Local {
			case "p":
				nestedParagraphs++
			case "r":
				runDepth++
			case "t":
				inText = inRun
			case "tab":
				if inRun {
					b.WriteByte('\t')
				}
			case "cr":
				if inRun {
					b.WriteByte('\n')
				}
			case "br":
				if inRun && isLineBreak(t) {
					b.WriteByte('\n')
				}
			case "noBreakHyphen":
				if inRun {
					b.WriteByte('-')
				}
			}
		case xml.EndElement:
			if depth == 0 {
				p.Text = b.String()
				return nil
			}
			depth--
			switch t.Name.Local {
			case "p":
				nestedParagraphs--
			case "r":
				runDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}

// isLineBreak reports whether a w:br is a text-wrapping break. Page and
// column breaks carry no text.
func isLineBreak(el xml.StartElement) bool {
	for _, attr := range el.Attr {
		if attr.Name.Local == "type" {
			return attr.Value == "" || attr.Value == "textWrapping"
		}
	}
	return true
}

func parseDocx(data []byte) (*docxBody, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != docxMainPart {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", docxMainPart, err)
		}
		defer rc.Close()

		var body docxBody
		if err := xml.NewDecoder(rc).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode %s: %w", docxMainPart, err)
		}
		return &body, nil
	}

	return nil, fmt.Errorf("no %s found in DOCX", docxMainPart)
}

// extractDocxText writes non-empty body paragraphs, then non-empty table
// cells in table/row/cell order, each followed by a newline.
func extractDocxText(data []byte) (string, error) {
	body, err := parseDocx(data)
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	for _, para := range body.Paragraphs {
		if strings.TrimSpace(para.Text) != "" {
			textBuilder.WriteString(para.Text)
			textBuilder.WriteString("\n")
		}
	}

	for _, table := range body.Tables {
		for _, row := range table.Rows {
			for _, cell := range row.Cells {
				text := cell.Text()
				if strings.TrimSpace(text) != "" {
					textBuilder.WriteString(text)
					textBuilder.WriteString("\n")
				}
			}
		}
	}

	return textBuilder.String(), nil
}
