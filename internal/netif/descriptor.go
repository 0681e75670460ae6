package netif

import "fmt"

// LinkType is the physical medium of an interface
type LinkType int

const (
	LinkOther LinkType = iota
	LinkEthernet
	LinkWireless
	LinkLoopback
	LinkTunnel
)

// String returns the lowercase name of the link type
func (t LinkType) String() string {
	switch t {
	case LinkEthernet:
		return "ethernet"
	case LinkWireless:
		return "wireless"
	case LinkLoopback:
		return "loopback"
	case LinkTunnel:
		return "tunnel"
	default:
		return "other"
	}
}

// Descriptor is a snapshot of one network interface as reported by the OS.
// It is taken once per discovery run and never refreshed.
type Descriptor struct {
	// ID is the identifier the DHCP client knows the adapter by: the adapter
	// GUID name on Windows, the interface name elsewhere.
	ID string

	// Name is the human-readable name (friendly name on Windows)
	Name string

	LinkType    LinkType
	Up          bool
	DHCPEnabled bool
	IPv4        bool
}

// Eligible reports whether the interface can carry the control-plane option:
// an Ethernet link that is up with IPv4 configured by DHCP.
func (d Descriptor) Eligible() bool {
	return d.LinkType == LinkEthernet && d.IPv4 && d.DHCPEnabled && d.Up
}

// String returns a one-line summary of the interface
func (d Descriptor) String() string {
	state := "down"
	if d.Up {
		state = "up"
	}
	name := d.Name
	if name == "" {
		name = d.ID
	}
	return fmt.Sprintf("%s (%s, %s, ipv4=%t, dhcp=%t)", name, d.LinkType, state, d.IPv4, d.DHCPEnabled)
}
