package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid caller input.
	// All validation errors match this sentinel via errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates an empty or whitespace-only query.
	ErrEmptyQuery = fmt.Errorf("%w: empty query", ErrInvalidInput)

	// ErrMissingVectorStore indicates a file or combined mode request
	// without a vector store id (explicit or default).
	ErrMissingVectorStore = fmt.Errorf("%w: missing vector store id", ErrInvalidInput)

	// ErrInvalidMode indicates an unrecognised search mode.
	ErrInvalidMode = fmt.Errorf("%w: invalid search mode", ErrInvalidInput)

	// ErrAuthFailed indicates a missing or rejected API credential.
	// Never retried; messages must not contain the credential value.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrTransientCall indicates a network or timeout failure on the
	// hosted search call. The call adapter retries once before surfacing it.
	ErrTransientCall = errors.New("transient call failure")

	// ErrMalformedResponse indicates the hosted service returned a payload
	// whose shape the normalizer cannot recognise at all. A recognisable
	// payload with empty text or no citations is a valid empty result,
	// not this error.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a caller input problem, naming the offending field.
// It matches ErrInvalidInput and the specific sentinel it wraps.
type ValidationError struct {
	// Field is the name of the offending request parameter.
	Field string

	// Err is the underlying sentinel (ErrEmptyQuery, ErrMissingVectorStore,
	// ErrInvalidMode).
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

// Unwrap returns the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string, sentinel error) *ValidationError {
	return &ValidationError{Field: field, Err: sentinel}
}

// MalformedResponseError carries the unrecognisable raw payload for
// diagnostics. It matches ErrMalformedResponse via errors.Is.
type MalformedResponseError struct {
	// Reason describes what the normalizer failed to find.
	Reason string

	// Raw is the payload as received from the hosted service.
	Raw []byte
}

// Error implements the error interface. The raw payload is truncated to
// keep messages readable; the full payload stays on the struct.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s: %s", e.Reason, truncate(string(e.Raw), 200))
}

// truncate shortens s to at most max bytes, backing up to a rune boundary
// so multibyte characters are never split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Unwrap returns ErrMalformedResponse so callers can match the sentinel.
func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}
