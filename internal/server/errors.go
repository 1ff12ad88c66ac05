// Package server provides the HTTP REST API for the interview coach.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/interview-coach/internal/extraction"
	"github.com/jonathan/interview-coach/internal/interview"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidInput *interview.InvalidInputError
		notFound     *interview.NotFoundError
		conflict     *interview.ConflictError
		storage      *interview.StorageError
		validation   *ErrValidation
		unsupported  *extraction.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &invalidInput), errors.As(err, &validation), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &storage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
