package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest},
		{"conflict", Conflict("category", "name"), http.StatusBadRequest},
		{"not found", NotFound("patient", nil), http.StatusNotFound},
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized},
		{"internal", Internal(stderrors.New("boom")), http.StatusInternalServerError},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("user", nil)), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestConflictMessage(t *testing.T) {
	err := Conflict("user", "email", "phone")
	assert.Equal(t, "user with this email and phone already exists", err.Message)
	assert.Equal(t, []string{"email", "phone"}, err.Duplicates)

	assert.Equal(t, "payment already exists", Conflict("payment").Message)
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("medicine", nil))
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrConflict))
}

func TestInternalUnwrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Internal(cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error", err.Message)
	assert.Equal(t, "INTERNAL", KindOf(err).String())
}

func TestInUseIsConflict(t *testing.T) {
	err := InUse("category", nil)
	assert.Equal(t, "category is still referenced by other records", err.Message)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
