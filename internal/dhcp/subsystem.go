package dhcp

import "sync"

// Subsystem is the platform DHCP client API.
//
// RequestParams performs one blocking request for recv.OptionID on adapter.
// buf is the receive buffer and *size its usable length on input; on
// StatusMoreData the platform stores the length it needs in *size. On
// StatusSuccess recv.Data is either nil or a slice of buf.
//
// Initialize and Cleanup bracket every use. Each successful Initialize is
// matched by exactly one Cleanup.
type Subsystem interface {
	Initialize() (version uint32, err error)
	Cleanup() error
	RequestParams(flags RequestFlags, adapter string, recv *Param, buf []byte, size *uint32, requestID string) uint32
}

// Session is an initialized Subsystem. Close releases it exactly once.
type Session struct {
	sub     Subsystem
	version uint32
	once    sync.Once
	err     error
}

// OpenSession initializes sub. Nothing needs releasing when it fails.
func OpenSession(sub Subsystem) (*Session, error) {
	version, err := sub.Initialize()
	if err != nil {
		return nil, &QueryError{
			Type:    ErrTypeSubsystemInit,
			Message: "failed to initialize DHCP client API",
			Err:     err,
		}
	}
	return &Session{sub: sub, version: version}, nil
}

// Version returns the API version reported at initialization
func (s *Session) Version() uint32 { return s.version }

// Subsystem returns the underlying platform API
func (s *Session) Subsystem() Subsystem { return s.sub }

// Close releases the session. Later calls return the first result.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.err = s.sub.Cleanup()
	})
	return s.err
}
