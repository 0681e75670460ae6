//go:build !linux && !(windows && amd64)

package dhcp

import "go.uber.org/zap"

type unsupportedSubsystem struct{}

// NewSystemSubsystem returns a backend whose Initialize always fails
func NewSystemSubsystem(logger *zap.Logger) Subsystem {
	return unsupportedSubsystem{}
}

func (unsupportedSubsystem) Initialize() (uint32, error) {
	return 0, ErrUnsupportedPlatform
}

func (unsupportedSubsystem) Cleanup() error {
	return nil
}

func (unsupportedSubsystem) RequestParams(flags RequestFlags, adapter string, recv *Param, buf []byte, size *uint32, requestID string) uint32 {
	recv.Data = nil
	return statusGenFailure
}
