package helpers

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestErrorsUnwrapTheirCause(t *testing.T) {
	cause := io.ErrUnexpectedEOF

	tests := []struct {
		name string
		err  error
	}{
		{"auth", NewAuthError("unauthorized", cause)},
		{"network", NewNetworkError("dial backend", cause)},
		{"decode", NewDecodeError("decode response", cause)},
		{"transport", NewTransportError("push channel fault", cause)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, cause)
			assert.Contains(t, tt.err.Error(), cause.Error())
		})
	}
}

// -----------------------------------------------------------------------------

func TestErrorsAreMatchableByType(t *testing.T) {
	var err error = NewTransportError("push channel fault", io.EOF)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)

	// Categories stay distinct; a transport fault is not an auth failure.
	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))
}

// -----------------------------------------------------------------------------

func TestStatusErrorsCarryTheirStatus(t *testing.T) {
	valErr := NewValidationError(422, "name already taken")
	assert.Equal(t, 422, valErr.Status)
	assert.Equal(t, "name already taken", valErr.Detail)
	assert.Contains(t, valErr.Error(), "422")

	srvErr := NewServerError(503, "upstream down")
	assert.Equal(t, 503, srvErr.Status)
	assert.Contains(t, srvErr.Error(), "503")
}
