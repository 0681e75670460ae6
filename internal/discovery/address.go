package discovery

import (
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
)

const (
	// EndpointPort is the port the scheduled events service listens on
	EndpointPort = 8080

	// EndpointPath is the path of the scheduled events document
	EndpointPath = "/metadata/latest/scheduledevents"
)

// Address is an IPv4 address carried in a DHCP option
type Address [4]byte

// ParseAddress converts an option payload into an Address.
// The payload must be exactly 4 bytes in network order.
func ParseAddress(value []byte) (Address, error) {
	var a Address
	if len(value) != len(a) {
		return a, &Error{
			Type:    ErrTypeMalformedOption,
			Message: fmt.Sprintf("option value is %d bytes, want 4", len(value)),
		}
	}
	copy(a[:], value)
	return a, nil
}

// Bytes returns the address as a new 4-byte slice
func (a Address) Bytes() []byte {
	return []byte{a[0], a[1], a[2], a[3]}
}

// Addr returns the address as a netip.Addr
func (a Address) Addr() netip.Addr {
	return netip.AddrFrom4(a)
}

// String returns the dotted-quad form
func (a Address) String() string {
	return a.Addr().String()
}

// Endpoint is the scheduled events service URI derived from an Address
type Endpoint struct {
	Address Address
	URL     url.URL
}

// NewEndpoint builds the service URI for addr
func NewEndpoint(addr Address) Endpoint {
	return Endpoint{
		Address: addr,
		URL: url.URL{
			Scheme: "http",
			Host:   addr.String() + ":" + strconv.Itoa(EndpointPort),
			Path:   EndpointPath,
		},
	}
}

// String returns the full URI, e.g.
// http://10.0.0.4:8080/metadata/latest/scheduledevents
func (e Endpoint) String() string {
	return e.URL.String()
}
