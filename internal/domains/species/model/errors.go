package model

import (
	"errors"
	"net/http"
)

var (
	// Validation
	ErrInvalidDraft  = errors.New("species draft is invalid")
	ErrInvalidFilter = errors.New("species filter is invalid")

	// Business rules
	ErrSpeciesNotFound = errors.New("species not found")
	ErrNotPermitted    = errors.New("not permitted to modify this species")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrSpeciesNotFound):
		return "SPECIES_NOT_FOUND"
	case errors.Is(err, ErrNotPermitted):
		return "FORBIDDEN"
	case errors.Is(err, ErrInvalidDraft), errors.Is(err, ErrInvalidFilter):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSpeciesNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidDraft), errors.Is(err, ErrInvalidFilter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
