package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeCodeAndMessage(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"validation", NewValidation("name is too short"), http.StatusBadRequest, "name is too short"},
		{"conflict wrapped", fmt.Errorf("creating user: %w", NewConflict("taken")), http.StatusConflict, "taken"},
		{"unauthorized", NewUnauthorized("authorization required"), http.StatusUnauthorized, "authorization required"},
		{"not found", NewNotFound("missing"), http.StatusNotFound, "missing"},
		{"internal hides cause", NewInternal(errors.New("dial tcp: refused")), http.StatusInternalServerError, internalMessage},
		{"plain error", errors.New("table users doesn't exist"), http.StatusInternalServerError, internalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, SafeCode(tt.err))
			assert.Equal(t, tt.wantMessage, SafeMessage(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflict("taken"))
	assert.True(t, Is(err, TypeConflict))
	assert.False(t, Is(err, TypeNotFound))
	assert.False(t, Is(errors.New("plain"), TypeInternal))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	assert.ErrorIs(t, NewInternal(cause), cause)
}
