package dataverse

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid dataverse configuration")
	// ErrInvalidBaseURL indicates the base URL is not a valid absolute URI
	ErrInvalidBaseURL = errors.New("invalid dataverse base URL")
	// ErrNoUnblockKey indicates an admin call was made without an unblock key
	ErrNoUnblockKey = errors.New("no unblock key configured")
	// ErrLockTimeout indicates a dataset stayed locked after all retries
	ErrLockTimeout = errors.New("dataset still locked")
	// ErrInvalidJSON indicates a request payload is not valid JSON
	ErrInvalidJSON = errors.New("payload is not valid JSON")
	// ErrInvalidPathSegment indicates an alias, name or version that cannot
	// be used as a single URL path segment
	ErrInvalidPathSegment = errors.New("invalid path segment")
)

// URISyntaxError is returned when the configured base URL cannot be used
type URISyntaxError struct {
	Input  string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *URISyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid base URL %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid base URL %q: %s", e.Input, e.Reason)
}

// Unwrap returns the underlying parse error
func (e *URISyntaxError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidBaseURL as a match
func (e *URISyntaxError) Is(target error) bool {
	return target == ErrInvalidBaseURL
}

// APIError represents a Dataverse API error
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("dataverse API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
