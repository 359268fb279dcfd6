package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ledongthucEngine is the pure-Go fallback for documents MuPDF rejects.
type ledongthucEngine struct{}

func newLedongthucEngine() *ledongthucEngine {
	return &ledongthucEngine{}
}

func (l *ledongthucEngine) Name() string {
	return "ledongthuc"
}

func (l *ledongthucEngine) Confidence() float64 {
	return 0.80
}

// ExtractPages returns one raw text string per page. Unreadable pages yield
// an empty string so page numbering stays intact.
func (l *ledongthucEngine) ExtractPages(pdfBytes []byte) (pages []string, err error) {
	// The ledongthuc parser panics on malformed content streams rather
	// than returning errors.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("panic during text extraction: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		pages = append(pages, extractPageText(reader, i))
	}

	return pages, nil
}

// extractPageText pulls plain text from a single page, swallowing both
// errors and parser panics so one bad page cannot abort the document.
func extractPageText(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(content)
}
