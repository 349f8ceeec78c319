package errors

import (
	"net/http"
	"testing"

	"authd/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := errors.Wrap(ErrEmailTaken.WrapMessage("signup"), "handler")

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindDuplicateIdentifier, kind)

	_, ok = KindOf(errors.New("connection refused"))
	assert.False(t, ok)
}

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("email: must be a valid email")

	assert.True(t, errors.Is(detailed, ErrValidationFailed))
	assert.False(t, errors.Is(detailed, ErrInvalidCredentials))
	assert.Equal(t, "email: must be a valid email", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details())
}

func TestPredefinedErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrEmailTaken.HTTPCode())
	assert.Equal(t, "Email already taken", ErrEmailTaken.Message())
	assert.Equal(t, http.StatusForbidden, ErrInvalidCredentials.HTTPCode())
	assert.Equal(t, "Invalid credentials", ErrInvalidCredentials.Error())
	assert.Equal(t, "invalid_credentials", KindInvalidCredentials.String())
}
