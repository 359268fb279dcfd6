// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"pdf-extractor/internal/domain"
)

// ExtractHandler handles PDF extraction and inspection HTTP requests
type ExtractHandler struct {
	extractor domain.Extractor
	inspector domain.Inspector
	config    domain.Config
	logger    domain.Logger
}

// NewExtractHandler creates a new extraction handler
func NewExtractHandler(extractor domain.Extractor, inspector domain.Inspector, config domain.Config, logger domain.Logger) *ExtractHandler {
	return &ExtractHandler{
		extractor: extractor,
		inspector: inspector,
		config:    config,
		logger:    logger,
	}
}

// Extract handles POST /extract: a multipart upload with a "file" field.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	pdfBytes, err := h.readUpload(r)
	if err != nil {
		h.logger.Warn("rejected upload", "error", err)
		writeError(w, err, h.config.IsDebug())
		return
	}
	h.extract(w, pdfBytes)
}

// ExtractBase64 handles POST /extract-base64: JSON body {"pdf_data": "<base64>"}.
func (h *ExtractHandler) ExtractBase64(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PDFData string `json:"pdf_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.PDFData) == "" {
		h.logger.Warn("rejected base64 request", "error", err)
		writeError(w, domain.ErrNoData, h.config.IsDebug())
		return
	}

	pdfBytes, err := base64.StdEncoding.DecodeString(body.PDFData)
	if err != nil {
		h.logger.Warn("rejected base64 request", "error", err)
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidBase64, err), h.config.IsDebug())
		return
	}
	if len(pdfBytes) == 0 {
		writeError(w, domain.ErrEmptyFile, h.config.IsDebug())
		return
	}

	h.extract(w, pdfBytes)
}

// Inspect handles POST /inspect: a multipart upload with a "file" field.
func (h *ExtractHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	pdfBytes, err := h.readUpload(r)
	if err != nil {
		h.logger.Warn("rejected upload", "error", err)
		writeError(w, err, h.config.IsDebug())
		return
	}

	info, err := h.inspector.Inspect(pdfBytes)
	if err != nil {
		h.logger.Error("inspection failed", err)
		writeError(w, err, h.config.IsDebug())
		return
	}

	h.logger.Info("inspected document", "pages", info.PageCount, "form_fields", len(info.FormFields))
	writeJSON(w, http.StatusOK, info)
}

func (h *ExtractHandler) extract(w http.ResponseWriter, pdfBytes []byte) {
	result, err := h.extractor.Extract(pdfBytes)
	if err != nil {
		h.logger.Error("extraction failed", err)
		writeError(w, err, h.config.IsDebug())
		return
	}

	h.logger.Info("extracted document", "pages", result.PageCount, "method", result.Method)
	writeJSON(w, http.StatusOK, result)
}

// readUpload validates and reads the "file" multipart field into memory.
func (h *ExtractHandler) readUpload(r *http.Request) ([]byte, error) {
	maxSize := h.config.GetMaxFileSize()

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, domain.ErrNoFile
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, domain.ErrNoFile
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return nil, domain.ErrNotPDF
	}

	pdfBytes, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(pdfBytes) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if int64(len(pdfBytes)) > maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrFileTooLarge, maxSize)
	}

	return pdfBytes, nil
}
