package events

import (
	"errors"
	"fmt"
	"os"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates the request never got a response
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates a non-2xx status code
	ErrTypeHTTP
	// ErrTypeParse indicates a response body that is not a valid document
	ErrTypeParse
	// ErrTypeTimeout indicates the request timed out
	ErrTypeTimeout
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError is a failed exchange with the scheduled events service
type APIError struct {
	Type       ErrorType
	Message    string
	StatusCode int    // HTTP status code (ErrTypeHTTP only)
	Body       string // response body (ErrTypeHTTP only)
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

func newNetworkError(message string, err error) *APIError {
	if os.IsTimeout(err) {
		return &APIError{Type: ErrTypeTimeout, Message: message, Err: err}
	}
	return &APIError{Type: ErrTypeNetwork, Message: message, Err: err}
}

func newHTTPError(statusCode int, body string) *APIError {
	return &APIError{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

func newParseError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeParse, Message: message, Err: err}
}

// IsHTTPError reports whether err is a non-2xx response
func IsHTTPError(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.Type == ErrTypeHTTP
}

// IsNetworkError reports whether err is a connection failure or timeout
func IsNetworkError(err error) bool {
	var e *APIError
	return errors.As(err, &e) && (e.Type == ErrTypeNetwork || e.Type == ErrTypeTimeout)
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
