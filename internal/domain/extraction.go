package domain

// ExtractionResult is the success payload returned for an extraction request.
type ExtractionResult struct {
	Success    bool     `json:"success"`
	Text       string   `json:"text"`
	PageCount  int      `json:"page_count"`
	Pages      []string `json:"pages"`
	Method     string   `json:"method"`
	Confidence float64  `json:"confidence"`
}

// ErrorResult is the failure payload. Every handler-boundary failure is
// surfaced as one of these with a 4xx/5xx status.
type ErrorResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResult creates a failure payload with the given message
func NewErrorResult(message string) *ErrorResult {
	return &ErrorResult{
		Success: false,
		Error:   message,
	}
}

// FormField describes one AcroForm field found during inspection
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Value    string `json:"value,omitempty"`
	Required bool   `json:"required"`
	ReadOnly bool   `json:"read_only"`
}

// DocumentInfo is the success payload returned for an inspection request
type DocumentInfo struct {
	Success    bool        `json:"success"`
	PageCount  int         `json:"page_count"`
	Version    string      `json:"version"`
	Encrypted  bool        `json:"encrypted"`
	FormFields []FormField `json:"form_fields"`
}
