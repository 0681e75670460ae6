package dhcp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/scheduledevents/internal/logging"
)

const (
	// DefaultInitialBufferSize is the first receive buffer size in bytes
	DefaultInitialBufferSize uint32 = 1024

	// DefaultMaxAttempts caps the buffer-growth retries (1 KiB doubling up to 128 KiB)
	DefaultMaxAttempts = 8

	// DefaultFlags requests the option synchronously
	DefaultFlags = RequestSynchronous
)

// Querier runs single option queries against a Subsystem.
type Querier struct {
	// Subsystem is the platform DHCP client API
	Subsystem Subsystem

	// Flags are passed to every request (default: synchronous)
	Flags RequestFlags

	// InitialBufferSize is the first receive buffer size
	InitialBufferSize uint32

	// MaxAttempts is the maximum number of requests per query, counting
	// the first one. Each StatusMoreData reply grows the buffer.
	MaxAttempts int

	logger *zap.Logger
}

// NewQuerier creates a Querier with default settings
func NewQuerier(sub Subsystem, logger *zap.Logger) *Querier {
	return &Querier{
		Subsystem:         sub,
		Flags:             DefaultFlags,
		InitialBufferSize: DefaultInitialBufferSize,
		MaxAttempts:       DefaultMaxAttempts,
		logger:            logging.OrNop(logger),
	}
}

// Query requests one option and returns its raw value.
//
// The platform session is opened and closed around the query. Both system
// backends reference-count sessions, so a query abandoned at a deadline may
// overlap the next one. StatusAccessDenied is reported as a subsystem
// failure since no other adapter can succeed either.
func (q *Querier) Query(req Request) (Result, error) {
	if req.InterfaceID() == "" {
		return Result{}, &QueryError{
			Type:     ErrTypeInvalidRequest,
			OptionID: req.OptionID(),
			Message:  "interface identifier must not be empty",
		}
	}

	session, err := OpenSession(q.Subsystem)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			q.logger.Warn("DHCP client API cleanup failed", zap.Error(cerr))
		}
	}()

	size := q.InitialBufferSize
	if size == 0 {
		size = DefaultInitialBufferSize
	}
	attempts := q.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		buf := make([]byte, size)
		recv := &Param{OptionID: req.OptionID()}
		reported := size

		q.logger.Debug("requesting DHCP option",
			zap.String("interface", req.InterfaceID()),
			zap.Uint32("option", req.OptionID()),
			zap.Uint32("buffer_size", size),
			zap.Int("attempt", attempt),
			zap.Stringer("flags", q.Flags),
		)

		status := session.Subsystem().RequestParams(q.Flags, req.InterfaceID(), recv, buf, &reported, req.ApplicationID())

		switch status {
		case StatusSuccess:
			if recv.Data == nil {
				q.logger.Debug("DHCP option not present",
					zap.String("interface", req.InterfaceID()),
					zap.Uint32("option", req.OptionID()),
				)
				return Absent(), nil
			}
			result := Present(recv.Data)
			q.logger.Debug("DHCP option received",
				append([]zap.Field{
					zap.String("interface", req.InterfaceID()),
					zap.Uint32("option", req.OptionID()),
				}, logging.RawBytesFields(recv.Data)...)...,
			)
			return result, nil

		case StatusFileNotFound:
			return Absent(), nil

		case StatusAccessDenied:
			return Result{}, &QueryError{
				Type:        ErrTypeSubsystemInit,
				Code:        status,
				InterfaceID: req.InterfaceID(),
				OptionID:    req.OptionID(),
				Message:     "access to the DHCP client subsystem denied",
			}

		case StatusMoreData:
			next := size * 2
			if reported > next {
				next = reported
			}
			q.logger.Debug("DHCP buffer too small, growing",
				zap.String("interface", req.InterfaceID()),
				zap.Uint32("from", size),
				zap.Uint32("to", next),
			)
			size = next

		default:
			return Result{}, &QueryError{
				Type:        ErrTypeQueryFailed,
				Code:        status,
				InterfaceID: req.InterfaceID(),
				OptionID:    req.OptionID(),
				Message:     "DhcpRequestParams failed",
			}
		}
	}

	return Result{}, &QueryError{
		Type:        ErrTypeBufferExhausted,
		Code:        StatusMoreData,
		InterfaceID: req.InterfaceID(),
		OptionID:    req.OptionID(),
		Message:     fmt.Sprintf("option still larger than buffer after %d attempts", attempts),
	}
}
