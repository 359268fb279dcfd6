// Package service implements PDF text extraction and inspection on top of
// third-party parsing libraries.
package service

import (
	"bytes"
	"fmt"

	"pdf-extractor/internal/domain"
)

var pdfHeader = []byte("%PDF-")

// engine is one text-extraction backend. Engines are tried in order; the
// first one that opens the document supplies the page texts.
type engine interface {
	Name() string
	Confidence() float64
	ExtractPages(pdfBytes []byte) ([]string, error)
}

// PDFExtractor implements domain.Extractor on a chain of engines.
type PDFExtractor struct {
	engines []engine
	tables  *tableDetector
	logger  domain.Logger
}

// NewPDFExtractor creates an extractor with the default engine chain:
// MuPDF first, the pure-Go ledongthuc reader as fallback.
func NewPDFExtractor(logger domain.Logger) *PDFExtractor {
	return &PDFExtractor{
		engines: []engine{newMuPDFEngine(logger), newLedongthucEngine()},
		tables:  newTableDetector(),
		logger:  logger,
	}
}

// Extract pulls per-page text out of an in-memory PDF, cleans it, merges
// detected tables into the page text, and joins pages with page breaks.
func (e *PDFExtractor) Extract(pdfBytes []byte) (*domain.ExtractionResult, error) {
	if len(pdfBytes) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if !bytes.HasPrefix(pdfBytes, pdfHeader) {
		return nil, domain.ErrNotPDF
	}

	var lastErr error
	for _, eng := range e.engines {
		rawPages, err := eng.ExtractPages(pdfBytes)
		if err != nil {
			e.logger.Warn("extraction engine failed, trying next", "engine", eng.Name(), "error", err)
			lastErr = err
			continue
		}
		return e.buildResult(pdfBytes, rawPages, eng), nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparseable, lastErr)
	}
	return nil, domain.ErrUnparseable
}

func (e *PDFExtractor) buildResult(pdfBytes []byte, rawPages []string, eng engine) *domain.ExtractionResult {
	// Table detection is best-effort; the plain text stands on its own
	// when the positioned-text pass fails.
	tables, err := e.tables.detect(pdfBytes)
	if err != nil {
		e.logger.Debug("table detection skipped", "error", err)
		tables = nil
	}

	pages := make([]string, len(rawPages))
	for i, raw := range rawPages {
		page := cleanPageText(raw)
		if tableText := tables[i+1]; tableText != "" {
			if page != "" {
				page = page + "\n\n" + tableText
			} else {
				page = tableText
			}
		}
		pages[i] = page
	}

	return &domain.ExtractionResult{
		Success:    true,
		Text:       combinePages(pages),
		PageCount:  len(pages),
		Pages:      pages,
		Method:     eng.Name(),
		Confidence: eng.Confidence(),
	}
}
