package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Predicates_MatchWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("resolve: %w", NewConflictError("join request is no longer pending"))

	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
}

func TestAppError_CodeOf_PlainError_ReturnsInternal(t *testing.T) {
	assert.Equal(t, CodeInternalError, CodeOf(errors.New("boom")))
}

func TestAppError_IsUnauthorized_IncludesTokenExpired(t *testing.T) {
	assert.True(t, IsUnauthorized(NewTokenExpiredError()))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("missing token")))
	assert.False(t, IsUnauthorized(NewForbiddenError("nope")))
}

func TestAppError_IsValidation_CoversBothCodes(t *testing.T) {
	assert.True(t, IsValidation(NewInvalidRequestError("bad id")))
	assert.True(t, IsValidation(NewFieldValidationError("message", "is required")))
}

func TestAppError_NewNotFoundError_FormatsResource(t *testing.T) {
	err := NewNotFoundError("league")

	assert.Equal(t, "league not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
}

func TestAppError_NewInvariantViolationError_IsConflictStatus(t *testing.T) {
	err := NewInvariantViolationError("league already has an owner")

	assert.Equal(t, CodeInvariantViolation, err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.False(t, IsConflict(err))
}

func TestAppError_WithCause_KeepsOriginalUntouched(t *testing.T) {
	base := NewConflictError("duplicate")
	cause := errors.New("23505")

	withCause := base.WithCause(cause)

	assert.Nil(t, base.Err)
	assert.ErrorIs(t, withCause, cause)
}
