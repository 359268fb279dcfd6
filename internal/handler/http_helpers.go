package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pdf-extractor/internal/domain"
	apperrors "pdf-extractor/pkg/errors"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// classify maps service failures onto HTTP-facing error categories:
// bad input is 400, an unparseable document is 422, anything else is 500.
func classify(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, domain.ErrNoFile),
		errors.Is(err, domain.ErrNoData),
		errors.Is(err, domain.ErrEmptyFile),
		errors.Is(err, domain.ErrNotPDF),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrInvalidBase64):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, domain.ErrUnparseable):
		return apperrors.NewProcessingError(err.Error(), err)
	default:
		return apperrors.NewInternalError("internal server error", err)
	}
}

// writeError writes an Error Result with the status implied by the error
// kind. Internal error details stay out of responses unless verbose is set.
func writeError(w http.ResponseWriter, err error, verbose bool) {
	appErr := classify(err)
	message := appErr.Message
	if verbose && appErr.Cause != nil {
		message = appErr.Cause.Error()
	}
	writeJSON(w, appErr.StatusCode, domain.NewErrorResult(message))
}
