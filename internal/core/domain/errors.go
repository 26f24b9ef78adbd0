package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrMissingIdentifier indicates a recipe has no identifier where one is required.
	ErrMissingIdentifier = errors.New("missing identifier")
)

// ValidationError reports a required field that is missing or malformed.
// It is raised before any remote call is attempted.
type ValidationError struct {
	// Field names the offending field (e.g. "id", "name").
	Field string

	// Err is the underlying cause.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %v", e.Err)
	}
	return fmt.Sprintf("validation: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports every validation error as ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// invalid builds a ValidationError with a plain message.
func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Err: errors.New(msg)}
}

// ConnectionError reports a transport-level failure: the remote
// recipe service could not be reached at all.
type ConnectionError struct {
	// Op is the operation that failed (e.g. "list recipes").
	Op string

	// URL is the endpoint that could not be reached.
	URL string

	// Err is the transport error.
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: cannot reach %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError reports a non-success HTTP status from the remote recipe service.
type APIError struct {
	// Op is the operation that failed.
	Op string

	// StatusCode is the HTTP status returned.
	StatusCode int

	// Message is the remote error detail, if any.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: remote returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: remote returned status %d: %s", e.Op, e.StatusCode, e.Message)
}

// IsConnectionError reports whether err is, or wraps, a ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsAPIError reports whether err is, or wraps, an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// StatusCode returns the HTTP status carried by an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// DescribeLoadError turns a failed catalog load into a user-facing message.
// An unreachable server and an error response get distinct messages.
func DescribeLoadError(err error) string {
	if err == nil {
		return ""
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		base := strings.TrimSuffix(connErr.URL, "/recipes")
		return fmt.Sprintf("Cannot connect to the recipe server. Make sure the backend is running at %s", base)
	}
	return "Error loading recipes: " + err.Error()
}
