package services

import (
	"bytes"
	"fmt"
	"html"
	"log"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

type DocumentParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(data []byte) (*DocumentContent, error)
}

type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

type DocumentContent struct {
	Text      string
	PageCount int
	Format    DocumentFormat
}

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")

	xmlParagraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag          = regexp.MustCompile(`<[^>]+>`)
)

type documentParserService struct{}

func NewDocumentParserService() DocumentParserService {
	return &documentParserService{}
}

func (p *documentParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (p *documentParserService) ExtractTextWithMetaData(data []byte) (*DocumentContent, error) {
	switch DetectFormat(data) {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	default:
		return nil, fmt.Errorf("%w: unrecognized document format", ErrUnreadableDocument)
	}
}

// DetectFormat sniffs the document format from its leading bytes.
func DetectFormat(data []byte) DocumentFormat {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(data, zipMagic):
		return FormatDOCX
	default:
		return ""
	}
}

func extractPDF(data []byte) (content *DocumentContent, err error) {
	// The pdf reader panics on some corrupt structures.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("%w: corrupt PDF: %v", ErrUnreadableDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", ErrUnreadableDocument, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page without a text layer contributes nothing.
			log.Printf("⚠️  No text extracted from page %d: %v\n", pageIndex, err)
			continue
		}

		textBuilder.WriteString(text)
	}

	return &DocumentContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
		Format:    FormatPDF,
	}, nil
}

func extractDOCX(data []byte) (*DocumentContent, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open DOCX: %v", ErrUnreadableDocument, err)
	}
	defer doc.Close()

	body := doc.Editable().GetContent()
	body = xmlParagraphEnd.ReplaceAllString(body, "\n")
	body = xmlTag.ReplaceAllString(body, "")
	body = html.UnescapeString(body)

	return &DocumentContent{
		Text:      CleanText(body),
		PageCount: 1,
		Format:    FormatDOCX,
	}, nil
}

// CleanText trims every line and drops the empty ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
