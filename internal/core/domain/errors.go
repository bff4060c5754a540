package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when the backend rejects a sign-in.
	// Non-retryable without new input.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired marks a session past its expiry, detected locally or
	// through an upstream 401. Equivalent to being signed out.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden is returned when a capability check denies an operation.
	ErrForbidden = errors.New("access forbidden")
	// ErrUnknownResource rejects resource names outside the closed set.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrUnknownAction rejects domain actions the resource doesn't define.
	ErrUnknownAction = errors.New("unknown action")
)

// NetworkError wraps a transport-level failure (no usable response): DNS,
// connect, timeout. Retryable at the caller's discretion, never retried
// automatically.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("upstream %s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx upstream response. Message carries the backend's
// own error text when it sent one.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.Status)
}

// PayloadError marks a response the gateway could not interpret: malformed
// JSON, or a well-formed envelope reporting success=false. Distinct from
// ServerError so the UI can render a validation failure instead of a
// generic server fault.
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string { return "upstream payload: " + e.Message }
