package dhcp

import "fmt"

// ControlEndpointOption is the vendor-reserved option that carries the
// control-plane endpoint address.
const ControlEndpointOption uint32 = 245

// MaxOptionID is the largest option number a DHCPv4 packet can carry
const MaxOptionID uint32 = 255

// RequestFlags select how the platform serves a parameter request.
type RequestFlags uint32

const (
	// RequestPersistent asks the platform to keep requesting the option on
	// every lease negotiation, keyed by the application ID.
	RequestPersistent RequestFlags = 0x01
	// RequestSynchronous blocks until the option is available.
	RequestSynchronous RequestFlags = 0x02
	// RequestAsynchronous returns immediately (unused here).
	RequestAsynchronous RequestFlags = 0x04
	// RequestCancel cancels a pending asynchronous request (unused here).
	RequestCancel RequestFlags = 0x08
)

// String returns the flag names joined with "|"
func (f RequestFlags) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		flag RequestFlags
		name string
	}{
		{RequestPersistent, "persistent"},
		{RequestSynchronous, "synchronous"},
		{RequestAsynchronous, "asynchronous"},
		{RequestCancel, "cancel"},
	}
	out := ""
	rest := f
	for _, n := range names {
		if f&n.flag != 0 {
			if out != "" {
				out += "|"
			}
			out += n.name
			rest &^= n.flag
		}
	}
	if rest != 0 {
		if out != "" {
			out += "|"
		}
		out += fmt.Sprintf("0x%x", uint32(rest))
	}
	return out
}

// Platform status codes returned by Subsystem.RequestParams.
const (
	StatusSuccess uint32 = 0
	// StatusFileNotFound is reported when the adapter has no value for the option.
	StatusFileNotFound uint32 = 2
	// StatusAccessDenied means the caller may not use the DHCP client subsystem.
	StatusAccessDenied uint32 = 5
	// StatusInvalidParameter is reported for malformed requests.
	StatusInvalidParameter uint32 = 87
	// StatusMoreData means the buffer was too small; size holds the required length.
	StatusMoreData uint32 = 124
)

// Request identifies one option query. Build it with NewRequest.
type Request struct {
	interfaceID   string
	optionID      uint32
	applicationID string
}

// NewRequest validates and builds a Request.
// applicationID may be empty; it correlates persistent requests.
func NewRequest(interfaceID string, optionID uint32, applicationID string) (Request, error) {
	if interfaceID == "" {
		return Request{}, &QueryError{
			Type:     ErrTypeInvalidRequest,
			OptionID: optionID,
			Message:  "interface identifier must not be empty",
		}
	}
	if optionID > MaxOptionID {
		return Request{}, &QueryError{
			Type:     ErrTypeInvalidRequest,
			OptionID: optionID,
			Message:  fmt.Sprintf("option %d is out of range (max %d)", optionID, MaxOptionID),
		}
	}
	return Request{
		interfaceID:   interfaceID,
		optionID:      optionID,
		applicationID: applicationID,
	}, nil
}

// InterfaceID returns the adapter the option is requested on
func (r Request) InterfaceID() string { return r.interfaceID }

// OptionID returns the requested option number
func (r Request) OptionID() uint32 { return r.optionID }

// ApplicationID returns the request correlation ID (may be empty)
func (r Request) ApplicationID() string { return r.applicationID }

// String returns a compact description for logs and errors
func (r Request) String() string {
	return fmt.Sprintf("option %d on %s", r.optionID, r.interfaceID)
}

// Result holds the raw value of an option, or records that it was absent.
// A present result may hold zero bytes.
type Result struct {
	data    []byte
	present bool
}

// Present returns a result holding a private copy of data.
func Present(data []byte) Result {
	owned := make([]byte, len(data))
	copy(owned, data)
	return Result{data: owned, present: true}
}

// Absent returns the result for an option the platform does not have.
func Absent() Result {
	return Result{}
}

// Bytes returns the option value and whether it was present.
func (r Result) Bytes() ([]byte, bool) {
	if !r.present {
		return nil, false
	}
	return r.data, true
}

// IsPresent reports whether the option was returned
func (r Result) IsPresent() bool { return r.present }

// Len returns the number of value bytes (0 when absent)
func (r Result) Len() int { return len(r.data) }

// String returns a short description of the result
func (r Result) String() string {
	if !r.present {
		return "absent"
	}
	return fmt.Sprintf("%d bytes", len(r.data))
}

// Param mirrors one entry of the platform's parameter request list.
// On return from RequestParams, Data is nil when the platform reported a null
// data pointer and otherwise aliases the caller's buffer.
type Param struct {
	Flags    uint32
	OptionID uint32
	IsVendor bool
	Data     []byte
}
