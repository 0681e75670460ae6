package dhcp

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned by Initialize on platforms without a
// DHCP client backend.
var ErrUnsupportedPlatform = errors.New("no DHCP client backend for this platform")

// ErrorType represents the category of a query failure
type ErrorType int

const (
	// ErrTypeSubsystemInit indicates the platform DHCP session could not be established
	ErrTypeSubsystemInit ErrorType = iota
	// ErrTypeQueryFailed indicates the platform rejected the request with a status code
	ErrTypeQueryFailed
	// ErrTypeBufferExhausted indicates the buffer kept growing past the attempt cap
	ErrTypeBufferExhausted
	// ErrTypeInvalidRequest indicates the request could not be built
	ErrTypeInvalidRequest
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeSubsystemInit:
		return "DHCP Subsystem Init Failed"
	case ErrTypeQueryFailed:
		return "DHCP Query Failed"
	case ErrTypeBufferExhausted:
		return "DHCP Buffer Exhausted"
	case ErrTypeInvalidRequest:
		return "Invalid DHCP Request"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// QueryError describes a failed option query
type QueryError struct {
	Type        ErrorType // Category of error
	Code        uint32    // Platform status code (0 when not applicable)
	InterfaceID string    // Adapter the query ran against
	OptionID    uint32    // Requested option
	Message     string    // Human-readable detail
	Err         error     // Underlying error (if any)
}

// Error implements the error interface
func (e *QueryError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.InterfaceID != "" {
		msg = fmt.Sprintf("%s (option %d on %s)", msg, e.OptionID, e.InterfaceID)
	}
	if e.Code != 0 {
		msg = fmt.Sprintf("%s [status %d]", msg, e.Code)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *QueryError) Unwrap() error {
	return e.Err
}

func errorType(err error) (ErrorType, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Type, true
	}
	return 0, false
}

// IsSubsystemInitError checks if err means the DHCP subsystem is unavailable
func IsSubsystemInitError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeSubsystemInit
}

// IsQueryFailed checks if err is a per-query platform failure,
// including an exhausted buffer.
func IsQueryFailed(err error) bool {
	t, ok := errorType(err)
	return ok && (t == ErrTypeQueryFailed || t == ErrTypeBufferExhausted)
}

// Code returns the platform status code carried by err, or 0
func Code(err error) uint32 {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code
	}
	return 0
}
