package dhcp

import (
	"errors"
	"sync"
	"syscall"
)

// Status codes the emulated backends report for failures that have no
// native equivalent. Values follow the platform error numbering.
const (
	statusGenFailure uint32 = 31
	statusTimeout    uint32 = 1460
)

// sharedSession reference-counts a process-wide platform session. The first
// acquire opens it and the last release closes it, so a worker abandoned at
// a deadline keeps the session alive until its call returns.
type sharedSession struct {
	mu      sync.Mutex
	refs    int
	version uint32

	open  func() (uint32, error)
	close func() error
}

func (s *sharedSession) acquire() (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		version, err := s.open()
		if err != nil {
			return 0, err
		}
		s.version = version
	}
	s.refs++
	return s.version, nil
}

func (s *sharedSession) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		return nil
	}
	s.refs--
	if s.refs > 0 {
		return nil
	}
	return s.close()
}

// fillParam copies value into buf and points recv.Data at it, following the
// RequestParams buffer contract. present=false leaves recv.Data nil.
func fillParam(value []byte, present bool, recv *Param, buf []byte, size *uint32) uint32 {
	recv.Data = nil
	if !present {
		return StatusSuccess
	}

	capacity := uint32(len(buf))
	if *size < capacity {
		capacity = *size
	}
	need := uint32(len(value))
	if need > capacity {
		*size = need
		return StatusMoreData
	}

	n := copy(buf, value)
	recv.Data = buf[:n:n]
	return StatusSuccess
}

// statusFromError maps a backend failure to a platform status code.
// Permission errors become StatusAccessDenied; other errnos are not passed
// through since their numbers collide with platform codes.
func statusFromError(err error) uint32 {
	if errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES) {
		return StatusAccessDenied
	}
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return statusTimeout
	}
	return statusGenFailure
}
