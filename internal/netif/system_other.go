//go:build !windows

package netif

import (
	"net"
	"os"
	"path/filepath"
)

// sysClassNet is where Linux exposes per-interface attributes
var sysClassNet = "/sys/class/net"

type systemInventory struct{}

// System returns the inventory reported by net.Interfaces.
// There is no portable DHCP flag, so broadcast-capable interfaces are
// treated as DHCP-enabled IPv4 links.
func System() Inventory {
	return systemInventory{}
}

func (systemInventory) Interfaces() ([]Descriptor, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make([]Descriptor, 0, len(ifaces))
	for _, iface := range ifaces {
		out = append(out, describe(iface, isWireless(iface.Name)))
	}
	return out, nil
}

func isWireless(name string) bool {
	_, err := os.Stat(filepath.Join(sysClassNet, name, "wireless"))
	return err == nil
}

func describe(iface net.Interface, wireless bool) Descriptor {
	broadcast := iface.Flags&net.FlagBroadcast != 0
	d := Descriptor{
		ID:          iface.Name,
		Name:        iface.Name,
		Up:          iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagRunning != 0,
		DHCPEnabled: broadcast,
		IPv4:        broadcast,
	}

	switch {
	case iface.Flags&net.FlagLoopback != 0:
		d.LinkType = LinkLoopback
	case iface.Flags&net.FlagPointToPoint != 0 || len(iface.HardwareAddr) == 0:
		d.LinkType = LinkTunnel
	case len(iface.HardwareAddr) == 6 && wireless:
		d.LinkType = LinkWireless
	case len(iface.HardwareAddr) == 6 && broadcast:
		d.LinkType = LinkEthernet
	default:
		d.LinkType = LinkOther
	}
	return d
}
