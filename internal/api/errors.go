package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned on HTTP 401; stored credentials have been cleared
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrEmptyResults is returned when a successful envelope carries no result
	ErrEmptyResults = errors.New("api: empty results")
	// ErrNetwork matches every NetworkError
	ErrNetwork = errors.New("api: network failure")
)

// EnvelopeError is a 2xx response whose status is not "successful"
type EnvelopeError struct {
	Status  string
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %q: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %q", e.Status)
}

// HTTPError is a non-2xx response other than 401
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api: http %d: %s", e.StatusCode, e.Message)
}

// NetworkError is a transport failure before a response was read
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNetwork) match
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }
