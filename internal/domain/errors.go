package domain

import "errors"

// Domain errors
var (
	ErrNoFile        = errors.New("no file provided")
	ErrNoData        = errors.New("no PDF data provided")
	ErrFileTooLarge  = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile     = errors.New("uploaded file is empty")
	ErrNotPDF        = errors.New("file must be a PDF")
	ErrInvalidBase64 = errors.New("invalid base64 data")
	ErrUnparseable   = errors.New("could not parse PDF document")
)
