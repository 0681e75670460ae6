package discovery

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of discovery error
type ErrorType int

const (
	// ErrTypeMalformedOption indicates the option was present but not 4 bytes
	ErrTypeMalformedOption ErrorType = iota

	// ErrTypeTimeout indicates a per-interface query exceeded its deadline
	ErrTypeTimeout
)

// String returns a human-readable name for the error type
func (t ErrorType) String() string {
	switch t {
	case ErrTypeMalformedOption:
		return "MalformedOption"
	case ErrTypeTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// Error is a discovery failure tied to one interface
type Error struct {
	Type        ErrorType
	InterfaceID string
	Message     string
	Err         error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.InterfaceID != "" {
		msg = fmt.Sprintf("interface %s: %s", e.InterfaceID, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a discovery deadline failure
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrTypeTimeout
}

// IsMalformed reports whether err is a malformed option failure
func IsMalformed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrTypeMalformedOption
}
