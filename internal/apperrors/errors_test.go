package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	err := Validation("description", "Must provide a description when operation is REMOVE.")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Must provide a description when operation is REMOVE.", err.Error())

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "description", appErr.Field)
}

func TestNotFound(t *testing.T) {
	err := NotFound("job", "42")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No such job with id 42", err.Error())
}

func TestAuthKeepsCause(t *testing.T) {
	cause := fmt.Errorf("token is expired")
	err := Auth("Invalid token", cause)

	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Invalid token", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		Name   string
		Err    error
		Expect int
	}{
		{"validation", Validation("x", "bad"), http.StatusBadRequest},
		{"name validation", NameValidation("../etc"), http.StatusBadRequest},
		{"job exists", JobExists("DS1"), http.StatusBadRequest},
		{"already complete", JobAlreadyComplete("1"), http.StatusBadRequest},
		{"bumping disabled", BumpingDisabled(), http.StatusBadRequest},
		{"not found", NotFound("job", "1"), http.StatusNotFound},
		{"auth", Auth("Unauthorized", nil), http.StatusUnauthorized},
		{"wrapped not found", pkgerrors.Wrap(NotFound("job", "1"), "get job"), http.StatusNotFound},
		{"wrapped cause", fmt.Errorf("find job: %w", errors.New("connection reset")), http.StatusInternalServerError},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, HTTPStatus(c.Err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Internal Server Error", PublicMessage(fmt.Errorf("pq: relation \"job\" does not exist")))
	assert.Equal(t, "No such job with id 7", PublicMessage(pkgerrors.Wrap(NotFound("job", "7"), "get job")))
	assert.Equal(t, "Job already in progress for target DS1", PublicMessage(JobExists("DS1")))
}
