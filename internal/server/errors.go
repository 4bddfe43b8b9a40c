package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/digest-agent/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNoResult):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
