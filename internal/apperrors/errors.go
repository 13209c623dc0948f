// Package apperrors holds the error taxonomy shared by the storage backends,
// the authorizer and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification via errors.Is().
var (
	ErrValidation         = errors.New("validation error")
	ErrNameValidation     = errors.New("name validation error")
	ErrNotFound           = errors.New("not found")
	ErrJobExists          = errors.New("job exists")
	ErrJobAlreadyComplete = errors.New("job already complete")
	ErrBumpingDisabled    = errors.New("bumping disabled")
	ErrAuth               = errors.New("auth error")
)

// Error carries a client-facing message alongside the sentinel used for
// classification.
type Error struct {
	Sentinel error
	Message  string
	Field    string // validation errors only
	Resource string // not found / conflict errors only
	Cause    error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Sentinel}
	}
	return []error{e.Sentinel, e.Cause}
}

// Validation creates a validation error for a specific field.
func Validation(field, message string) error {
	return &Error{
		Sentinel: ErrValidation,
		Message:  message,
		Field:    field,
	}
}

// NameValidation rejects a dataset name outside the allowed character set.
func NameValidation(name string) error {
	return &Error{
		Sentinel: ErrNameValidation,
		Message:  fmt.Sprintf("invalid dataset name: %q", name),
		Field:    "name",
	}
}

// NotFound creates a not found error for a resource.
func NotFound(resource, id string) error {
	return &Error{
		Sentinel: ErrNotFound,
		Message:  fmt.Sprintf("No such %s with id %s", resource, id),
		Resource: resource,
	}
}

func JobExists(target string) error {
	return &Error{
		Sentinel: ErrJobExists,
		Message:  fmt.Sprintf("Job already in progress for target %s", target),
		Resource: "job",
	}
}

func JobAlreadyComplete(id string) error {
	return &Error{
		Sentinel: ErrJobAlreadyComplete,
		Message:  fmt.Sprintf("Job with id %s is already finished", id),
		Resource: "job",
	}
}

func BumpingDisabled() error {
	return &Error{
		Sentinel: ErrBumpingDisabled,
		Message:  "Bumping the datastore is disabled",
	}
}

// Auth creates an authentication failure. The cause is kept for logs only.
func Auth(message string, cause error) error {
	return &Error{
		Sentinel: ErrAuth,
		Message:  message,
		Cause:    cause,
	}
}
