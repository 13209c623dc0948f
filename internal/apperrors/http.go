package apperrors

import (
	"errors"
	"net/http"
)

const internalServerError = "Internal Server Error"

// HTTPStatus maps an error to the appropriate HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNameValidation),
		errors.Is(err, ErrJobExists),
		errors.Is(err, ErrJobAlreadyComplete),
		errors.Is(err, ErrBumpingDisabled):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text that may be shown to a client. Anything that
// maps to a 500 is replaced with a generic message.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return internalServerError
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
