package domain

// Extractor defines the main interface for PDF text extraction
type Extractor interface {
	Extract(pdfBytes []byte) (*ExtractionResult, error)
}

// Inspector reports structural metadata (pages, version, form fields)
// for an in-memory PDF document
type Inspector interface {
	Inspect(pdfBytes []byte) (*DocumentInfo, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	IsDebug() bool
}
