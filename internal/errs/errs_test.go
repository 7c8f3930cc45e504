package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enquiryForm struct {
	Name    string `validate:"required,min=2"`
	Email   string `validate:"required,email"`
	Message string `validate:"max=5"`
	Status  string `validate:"omitempty,oneof=new resolved"`
}

func TestValidationErrorCollectsFields(t *testing.T) {
	err := validator.New().Struct(enquiryForm{Name: "A", Email: "nope", Message: "too long", Status: "odd"})
	require.Error(t, err)

	httpErr := ValidationError(err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "VALIDATION_FAILED", httpErr.Code)
	require.Len(t, httpErr.Errors, 4)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be at least 2 characters", byField["name"])
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be at most 5 characters", byField["message"])
	assert.Equal(t, "must be one of: new, resolved", byField["status"])
}

func TestValidationErrorFallsBackToMessage(t *testing.T) {
	httpErr := ValidationError(errors.New("invalid JSON body"))
	assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	assert.Equal(t, "invalid JSON body", httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestHTTPErrorMatchesWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("guard failed: %w", NewForbiddenError("admins only"))
	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var target *HTTPError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, http.StatusForbidden, target.Status)
	assert.Equal(t, "FORBIDDEN", target.Code)
}

func TestInternalServerErrorHidesCause(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", err.Code)
}
