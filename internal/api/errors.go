package api

import (
	"errors"
	"net/http"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/service/study"
	"github.com/trililingo/trililingo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrSessionNotFound),
		errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, study.ErrSessionClosed),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrSessionLanguageEmpty),
		errors.Is(err, domain.ErrSessionActivityEmpty),
		errors.Is(err, domain.ErrAttemptSessionIDEmpty),
		errors.Is(err, domain.ErrAttemptItemIDEmpty),
		errors.Is(err, domain.ErrAttemptInconsistentXP):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, study.ErrSessionClosed):
		return "Session already finalized"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, domain.ErrSessionLanguageEmpty):
		return "Language is required"

	case errors.Is(err, domain.ErrSessionActivityEmpty):
		return "Activity type is required"

	case errors.Is(err, domain.ErrAttemptSessionIDEmpty),
		errors.Is(err, domain.ErrAttemptItemIDEmpty),
		errors.Is(err, domain.ErrAttemptInconsistentXP):
		return "Invalid attempt data"

	default:
		return "An unexpected error occurred"
	}
}
