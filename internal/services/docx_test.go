package services

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	ct, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types/>`))
	require.NoError(t, err)

	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func TestExtract_DocxParagraphsBeforeTables(t *testing.T) {
	body := para("p1") +
		`<w:tbl><w:tr><w:tc>` + para("c1") + `</w:tc><w:tc>` + para("c2") + `</w:tc></w:tr></w:tbl>` +
		para("p2")
	e := newTestExtractor(&fakeTextLayer{}, &fakeRasterizer{}, &fakeOCR{})

	text, err := e.Extract(context.Background(), &Document{Filename: "cv.docx", Data: buildDocx(t, body)})

	require.NoError(t, err)
	assert.Equal(t, "p1\np2\nc1\nc2\n", text)
}

func TestExtractDocxText_SkipsBlankParagraphsAndCells(t *testing.T) {
	body := para("Experience") + para("   ") + `<w:p/>` +
		`<w:tbl><w:tr><w:tc>` + para(" ") + `</w:tc><w:tc>` + para("Go") + `</w:tc></w:tr>` +
		`<w:tr><w:tc>` + para("AWS") + para("GCP") + `</w:tc></w:tr></w:tbl>`

	text, err := extractDocxText(buildDocx(t, body))

	require.NoError(t, err)
	assert.Equal(t, "Experience\nGo\nAWS\nGCP\n", text)
}

func TestExtractDocxText_RunsTabsAndBreaks(t *testing.T) {
	body := `<w:p>` +
		`<w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
		`<w:r><w:t>Jane</w:t></w:r><w:r><w:tab/><w:t>Doe</w:t></w:r>` +
		`<w:r><w:br/><w:t>Berlin</w:t><w:br w:type="page"/></w:r>` +
		`<w:hyperlink><w:r><w:t xml:space="preserve"> site</w:t></w:r></w:hyperlink>` +
		`</w:p>`

	text, err := extractDocxText(buildDocx(t, body))

	require.NoError(t, err)
	assert.Equal(t, "Jane\tDoe\nBerlin site\n", text)
}

func TestExtractDocxText_IgnoresTextBoxesAndNestedTables(t *testing.T) {
	body := `<w:p><w:r><w:t>Main</w:t></w:r>` +
		`<w:r><w:drawing><w:txbxContent>` + para("floating") + `</w:txbxContent></w:drawing></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc>` + para("outer") +
		`<w:tbl><w:tr><w:tc>` + para("inner") + `</w:tc></w:tr></w:tbl>` +
		`</w:tc></w:tr></w:tbl>`

	text, err := extractDocxText(buildDocx(t, body))

	require.NoError(t, err)
	assert.Equal(t, "Main\nouter\n", text)
}

func TestExtract_DocxCorrupt(t *testing.T) {
	e := newTestExtractor(&fakeTextLayer{}, &fakeRasterizer{}, &fakeOCR{})

	_, err := e.Extract(context.Background(), &Document{Filename: "cv.docx", Data: []byte("not a zip")})

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestExtract_DocxWithoutMainPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extractDocxText(buf.Bytes())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}
