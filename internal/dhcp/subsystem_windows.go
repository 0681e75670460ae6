//go:build windows && amd64

package dhcp

import (
	"runtime"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/muurk/scheduledevents/internal/logging"
)

var (
	modDhcpcsvc = windows.NewLazySystemDLL("dhcpcsvc.dll")

	procDhcpCApiInitialize = modDhcpcsvc.NewProc("DhcpCApiInitialize")
	procDhcpCApiCleanup    = modDhcpcsvc.NewProc("DhcpCApiCleanup")
	procDhcpRequestParams  = modDhcpcsvc.NewProc("DhcpRequestParams")
)

// dhcpcapiParams is DHCPCAPI_PARAMS from dhcpcsdk.h
type dhcpcapiParams struct {
	Flags      uint32
	OptionID   uint32
	IsVendor   int32
	Data       *byte
	NBytesData uint32
}

// dhcpcapiParamsArray is DHCPCAPI_PARAMS_ARRAY from dhcpcsdk.h
type dhcpcapiParamsArray struct {
	NParams uint32
	Params  *dhcpcapiParams
}

// windowsSubsystem wraps the dhcpcsvc.dll client API. The DLL session is
// process-wide, so it is opened by the first Initialize and released by the
// last Cleanup.
type windowsSubsystem struct {
	session sharedSession
	logger  *zap.Logger
}

// NewSystemSubsystem returns the dhcpcsvc.dll client API
func NewSystemSubsystem(logger *zap.Logger) Subsystem {
	s := &windowsSubsystem{logger: logging.OrNop(logger)}
	s.session.open = s.apiInitialize
	s.session.close = apiCleanup
	return s
}

func (s *windowsSubsystem) Initialize() (uint32, error) {
	return s.session.acquire()
}

func (s *windowsSubsystem) Cleanup() error {
	return s.session.release()
}

func (s *windowsSubsystem) apiInitialize() (uint32, error) {
	for _, proc := range []*windows.LazyProc{procDhcpCApiInitialize, procDhcpCApiCleanup, procDhcpRequestParams} {
		if err := proc.Find(); err != nil {
			return 0, err
		}
	}

	var version uint32
	r, _, _ := procDhcpCApiInitialize.Call(uintptr(unsafe.Pointer(&version)))
	if r != 0 {
		return 0, windows.Errno(r)
	}
	s.logger.Debug("DHCP client API initialized", zap.Uint32("version", version))
	return version, nil
}

func apiCleanup() error {
	r, _, _ := procDhcpCApiCleanup.Call()
	if r != 0 {
		return windows.Errno(r)
	}
	return nil
}

// RequestParams calls DhcpRequestParams. The two DHCPCAPI_PARAMS_ARRAY
// arguments are 16-byte structs, which the x64 convention passes by address.
func (s *windowsSubsystem) RequestParams(flags RequestFlags, adapter string, recv *Param, buf []byte, size *uint32, requestID string) uint32 {
	recv.Data = nil
	if recv.OptionID > MaxOptionID {
		return StatusInvalidParameter
	}

	adapterPtr, err := windows.UTF16PtrFromString(adapter)
	if err != nil {
		return uint32(windows.ERROR_INVALID_PARAMETER)
	}
	var requestIDPtr *uint16
	if requestID != "" {
		requestIDPtr, err = windows.UTF16PtrFromString(requestID)
		if err != nil {
			return uint32(windows.ERROR_INVALID_PARAMETER)
		}
	}

	param := dhcpcapiParams{
		Flags:    recv.Flags,
		OptionID: recv.OptionID,
	}
	if recv.IsVendor {
		param.IsVendor = 1
	}
	send := dhcpcapiParamsArray{}
	recd := dhcpcapiParamsArray{NParams: 1, Params: &param}

	if *size > uint32(len(buf)) {
		*size = uint32(len(buf))
	}
	var bufPtr *byte
	if len(buf) > 0 {
		bufPtr = &buf[0]
	}

	r, _, _ := procDhcpRequestParams.Call(
		uintptr(flags),
		0,
		uintptr(unsafe.Pointer(adapterPtr)),
		0,
		uintptr(unsafe.Pointer(&send)),
		uintptr(unsafe.Pointer(&recd)),
		uintptr(unsafe.Pointer(bufPtr)),
		uintptr(unsafe.Pointer(size)),
		uintptr(unsafe.Pointer(requestIDPtr)),
	)
	runtime.KeepAlive(adapterPtr)
	runtime.KeepAlive(requestIDPtr)
	runtime.KeepAlive(buf)

	if r != 0 {
		return uint32(r)
	}
	if param.Data == nil {
		return StatusSuccess
	}
	recv.Data = optionBytes(buf, param.Data, param.NBytesData)
	return StatusSuccess
}

// optionBytes returns the n bytes at data, as a slice of buf when data
// points inside it.
func optionBytes(buf []byte, data *byte, n uint32) []byte {
	if n == 0 {
		return []byte{}
	}
	if len(buf) > 0 {
		base := uintptr(unsafe.Pointer(&buf[0]))
		p := uintptr(unsafe.Pointer(data))
		if p >= base && p+uintptr(n) <= base+uintptr(len(buf)) {
			off := p - base
			return buf[off : off+uintptr(n)]
		}
	}
	return unsafe.Slice(data, n)
}
