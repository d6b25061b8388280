package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/models"
)

var (
	sharedAnnotator     Annotator
	sharedAnnotatorErr  error
	sharedAnnotatorOnce sync.Once
)

// loadTestAnnotator loads the built-in model once per test binary.
func loadTestAnnotator(t *testing.T) Annotator {
	t.Helper()
	sharedAnnotatorOnce.Do(func() {
		sharedAnnotator, sharedAnnotatorErr = LoadAnnotator("")
	})
	require.NoError(t, sharedAnnotatorErr)
	return sharedAnnotator
}

// fakeAnnotator returns a canned annotation and counts calls.
type fakeAnnotator struct {
	mu         sync.Mutex
	annotation *Annotation
	err        error
	calls      []string
}

func (f *fakeAnnotator) Annotate(text string) (*Annotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.annotation, nil
}

func (f *fakeAnnotator) Name() string { return "fake" }

func (f *fakeAnnotator) Check(context.Context) error { return f.err }

type stubParser struct {
	text string
	err  error
}

func (s stubParser) ExtractText([]byte) (string, error) {
	return s.text, s.err
}

func (s stubParser) ExtractTextWithMetaData([]byte) (*DocumentContent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &DocumentContent{Text: s.text, PageCount: 1, Format: FormatPDF}, nil
}

type stubAnalyzer struct {
	result *models.AnalysisResult
	err    error
	block  chan struct{}
}

func (s *stubAnalyzer) Analyze([]byte, string) (*models.AnalysisResult, error) {
	if s.block != nil {
		<-s.block
	}
	return s.result, s.err
}

// buildPDF writes a minimal PDF with one page per entry. An empty entry
// produces a page without a content stream, like a scanned image page.
func buildPDF(pages ...string) []byte {
	type object struct {
		num  int
		body string
	}

	const (
		catalogNum = 1
		pagesNum   = 2
		fontNum    = 3
	)

	var objects []object
	var kids []string
	next := 4
	for _, text := range pages {
		pageNum := next
		next++
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))

		page := fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >>", pagesNum, fontNum)
		if text != "" {
			contentNum := next
			next++
			stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escapePDFString(text))
			objects = append(objects, object{
				num:  contentNum,
				body: fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
			})
			page += fmt.Sprintf(" /Contents %d 0 R", contentNum)
		}
		page += " >>"
		objects = append(objects, object{num: pageNum, body: page})
	}

	objects = append(objects,
		object{num: catalogNum, body: fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesNum)},
		object{num: pagesNum, body: fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))},
		object{num: fontNum, body: "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"},
	)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, next)
	for _, obj := range objects {
		offsets[obj.num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", obj.num, obj.body)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", next)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num < next; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", next, catalogNum, xrefOffset)

	return buf.Bytes()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// buildDOCX writes a minimal Word document with one paragraph per entry.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
