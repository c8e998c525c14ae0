package helpers

import "fmt"

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ConsoleError struct {
	Message string
	Cause   error
}

func (e *ConsoleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ConsoleError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// AuthError is any 401 response. The gateway handles it centrally (token
// eviction + redirect) before surfacing it to the caller.
type AuthError struct{ ConsoleError }

// NetworkError covers timeouts, refused connections and DNS failures.
type NetworkError struct{ ConsoleError }

// ValidationError is a non-401 4xx response; Detail carries the server's
// error body for the caller to render.
type ValidationError struct {
	ConsoleError
	Status int
	Detail string
}

// ServerError is a 5xx response.
type ServerError struct {
	ConsoleError
	Status int
}

// DecodeError is a malformed payload, REST or push. Push decode failures are
// logged and discarded without closing the connection.
type DecodeError struct{ ConsoleError }

// TransportError is a fault on the push connection; it triggers reconnection
// and is never surfaced past a log line.
type TransportError struct{ ConsoleError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewAuthError(msg string, cause error) *AuthError {
	return &AuthError{ConsoleError{Message: msg, Cause: cause}}
}

func NewNetworkError(msg string, cause error) *NetworkError {
	return &NetworkError{ConsoleError{Message: msg, Cause: cause}}
}

func NewValidationError(status int, detail string) *ValidationError {
	return &ValidationError{
		ConsoleError: ConsoleError{Message: fmt.Sprintf("request rejected (status %d)", status)},
		Status:       status,
		Detail:       detail,
	}
}

func NewServerError(status int, detail string) *ServerError {
	return &ServerError{
		ConsoleError: ConsoleError{Message: fmt.Sprintf("server error (status %d): %s", status, detail)},
		Status:       status,
	}
}

func NewDecodeError(msg string, cause error) *DecodeError {
	return &DecodeError{ConsoleError{Message: msg, Cause: cause}}
}

func NewTransportError(msg string, cause error) *TransportError {
	return &TransportError{ConsoleError{Message: msg, Cause: cause}}
}
