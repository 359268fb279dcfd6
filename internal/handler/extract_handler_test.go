package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pdf-extractor/internal/domain"
)

// Mock implementations for handler testing

type MockExtractor struct {
	result *domain.ExtractionResult
	err    error
	calls  int
}

func (m *MockExtractor) Extract(pdfBytes []byte) (*domain.ExtractionResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type MockInspector struct {
	info *domain.DocumentInfo
	err  error
}

func (m *MockInspector) Inspect(pdfBytes []byte) (*domain.DocumentInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.info, nil
}

type MockConfig struct {
	debug bool
}

func (c *MockConfig) GetServerPort() string { return "5001" }
func (c *MockConfig) GetMaxFileSize() int64 { return 10 * 1024 * 1024 }
func (c *MockConfig) GetLogLevel() string   { return "info" }
func (c *MockConfig) IsDebug() bool         { return c.debug }

func sampleResult() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		Success:    true,
		Text:       "page one\n\n--- Page Break ---\n\npage two",
		PageCount:  2,
		Pages:      []string{"page one", "page two"},
		Method:     "mupdf",
		Confidence: 0.95,
	}
}

func newTestHandler(extractor domain.Extractor, inspector domain.Inspector) *ExtractHandler {
	if inspector == nil {
		inspector = &MockInspector{info: &domain.DocumentInfo{Success: true}}
	}
	return NewExtractHandler(extractor, inspector, &MockConfig{}, NewMockHandlerLogger())
}

// multipartBody builds a multipart request body with a single file field.
func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func decodeErrorResult(t *testing.T, body *bytes.Buffer) domain.ErrorResult {
	t.Helper()
	var result domain.ErrorResult
	if err := json.Unmarshal(body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode error result: %v (body: %s)", err, body.String())
	}
	return result
}

func TestExtract_Success(t *testing.T) {
	extractor := &MockExtractor{result: sampleResult()}
	h := newTestHandler(extractor, nil)

	body, contentType := multipartBody(t, "file", "contract.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Extract(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, rr.Code, rr.Body.String())
	}

	var result domain.ExtractionResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success true")
	}
	if result.PageCount != len(result.Pages) {
		t.Fatalf("page_count %d does not match pages length %d", result.PageCount, len(result.Pages))
	}
	if result.Method != "mupdf" {
		t.Fatalf("expected method mupdf, got %s", result.Method)
	}
}

func TestExtract_MissingFileField(t *testing.T) {
	h := newTestHandler(&MockExtractor{result: sampleResult()}, nil)

	body, contentType := multipartBody(t, "document", "contract.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Extract(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	result := decodeErrorResult(t, rr.Body)
	if result.Success {
		t.Fatal("expected success false")
	}
	if result.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestExtract_EmptyFile(t *testing.T) {
	h := newTestHandler(&MockExtractor{result: sampleResult()}, nil)

	body, contentType := multipartBody(t, "file", "empty.pdf", nil)
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Extract(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if result := decodeErrorResult(t, rr.Body); result.Success {
		t.Fatal("expected success false")
	}
}

func TestExtract_NonPDFExtension(t *testing.T) {
	h := newTestHandler(&MockExtractor{result: sampleResult()}, nil)

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Extract(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestExtract_UnparseableDocument(t *testing.T) {
	extractErr := fmt.Errorf("%w: broken xref", domain.ErrUnparseable)
	h := newTestHandler(&MockExtractor{err: extractErr}, nil)

	body, contentType := multipartBody(t, "file", "broken.pdf", []byte("%PDF-1.4 damaged"))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Extract(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	if result := decodeErrorResult(t, rr.Body); result.Success {
		t.Fatal("expected success false")
	}
}

func TestExtractBase64_Success(t *testing.T) {
	extractor := &MockExtractor{result: sampleResult()}
	h := newTestHandler(extractor, nil)

	payload, _ := json.Marshal(map[string]string{
		"pdf_data": base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")),
	})
	req := httptest.NewRequest(http.MethodPost, "/extract-base64", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.ExtractBase64(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, rr.Code, rr.Body.String())
	}
	if extractor.calls != 1 {
		t.Fatalf("expected one extractor call, got %d", extractor.calls)
	}
}

func TestExtractBase64_InvalidBase64(t *testing.T) {
	h := newTestHandler(&MockExtractor{result: sampleResult()}, nil)

	payload := `{"pdf_data": "this is !!! not base64"}`
	req := httptest.NewRequest(http.MethodPost, "/extract-base64", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.ExtractBase64(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if result := decodeErrorResult(t, rr.Body); result.Success {
		t.Fatal("expected success false")
	}
}

func TestExtractBase64_MissingData(t *testing.T) {
	h := newTestHandler(&MockExtractor{result: sampleResult()}, nil)

	for _, payload := range []string{`{}`, `not json`, `{"pdf_data": ""}`} {
		req := httptest.NewRequest(http.MethodPost, "/extract-base64", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		h.ExtractBase64(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("payload %q: expected status %d, got %d", payload, http.StatusBadRequest, rr.Code)
		}
		if result := decodeErrorResult(t, rr.Body); result.Success {
			t.Fatalf("payload %q: expected success false", payload)
		}
	}
}

func TestExtract_InternalErrorHidesDetails(t *testing.T) {
	extractErr := fmt.Errorf("fitz: unexpected segfault detail")
	extractor := &MockExtractor{err: extractErr}
	h := NewExtractHandler(extractor, &MockInspector{}, &MockConfig{debug: false}, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "file", "doc.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Extract(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	result := decodeErrorResult(t, rr.Body)
	if strings.Contains(result.Error, "segfault") {
		t.Fatalf("internal details leaked into response: %s", result.Error)
	}
}

func TestInspect_Success(t *testing.T) {
	inspector := &MockInspector{info: &domain.DocumentInfo{
		Success:   true,
		PageCount: 3,
		Version:   "1.7",
		FormFields: []domain.FormField{
			{Name: "buyer_name", Type: "text", Value: "Jane Roe"},
		},
	}}
	h := newTestHandler(&MockExtractor{result: sampleResult()}, inspector)

	body, contentType := multipartBody(t, "file", "form.pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/inspect", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Inspect(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, rr.Code, rr.Body.String())
	}

	var info domain.DocumentInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode info: %v", err)
	}
	if info.PageCount != 3 || len(info.FormFields) != 1 {
		t.Fatalf("unexpected info: %+v", info)
	}
}
