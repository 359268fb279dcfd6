package service

import (
	"fmt"
	"strings"
	"time"

	"pdf-extractor/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// pageTimeout bounds a single page's text extraction; MuPDF can stall on
// damaged content streams.
const pageTimeout = 30 * time.Second

// muPDFEngine extracts layout-preserving text through go-fitz.
type muPDFEngine struct {
	logger domain.Logger
}

func newMuPDFEngine(logger domain.Logger) *muPDFEngine {
	return &muPDFEngine{logger: logger}
}

func (m *muPDFEngine) Name() string {
	return "mupdf"
}

func (m *muPDFEngine) Confidence() float64 {
	return 0.95
}

// ExtractPages returns one raw text string per page. A page that fails or
// times out yields an empty string so page numbering stays intact.
func (m *muPDFEngine) ExtractPages(pdfBytes []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	type pageResult struct {
		text string
		err  error
	}

	for pageNum := 0; pageNum < numPages; pageNum++ {
		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var text string
		select {
		case res := <-resultCh:
			if res.err != nil {
				m.logger.Warn("failed to extract text from page", "page", pageNum+1, "total", numPages, "error", res.err)
			}
			text = res.text
		case <-time.After(pageTimeout):
			m.logger.Warn("page extraction timeout; using empty page", "page", pageNum+1, "total", numPages)
			go func() { <-resultCh }() // drain so the goroutine can exit
		}

		pages = append(pages, strings.TrimSpace(text))
	}

	return pages, nil
}
