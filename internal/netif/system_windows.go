//go:build windows

package netif

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// IP_ADAPTER_ADDRESSES flag bits and interface types from iptypes.h/ipifcons.h
const (
	adapterDHCPEnabled = 0x00000004
	adapterIPv4Enabled = 0x00000080

	ifTypeEthernet = 6
	ifTypeLoopback = 24
	ifTypeWireless = 71
	ifTypeTunnel   = 131

	operStatusUp = 1
)

type systemInventory struct{}

// System returns the inventory reported by GetAdaptersAddresses
func System() Inventory {
	return systemInventory{}
}

func (systemInventory) Interfaces() ([]Descriptor, error) {
	size := uint32(15000)
	var buf []byte
	for {
		buf = make([]byte, size)
		first := (*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0]))
		err := windows.GetAdaptersAddresses(windows.AF_UNSPEC, windows.GAA_FLAG_INCLUDE_PREFIX, 0, first, &size)
		if err == nil {
			if size == 0 {
				return nil, nil
			}
			break
		}
		if err != windows.ERROR_BUFFER_OVERFLOW {
			return nil, fmt.Errorf("GetAdaptersAddresses: %w", err)
		}
		if size <= uint32(len(buf)) {
			return nil, fmt.Errorf("GetAdaptersAddresses: %w", err)
		}
	}

	var out []Descriptor
	for aa := (*windows.IpAdapterAddresses)(unsafe.Pointer(&buf[0])); aa != nil; aa = aa.Next {
		out = append(out, describeAdapter(aa.IfType, aa.OperStatus, aa.Flags,
			windows.BytePtrToString(aa.AdapterName),
			windows.UTF16PtrToString(aa.FriendlyName)))
	}
	return out, nil
}

func describeAdapter(ifType, operStatus, flags uint32, id, name string) Descriptor {
	d := Descriptor{
		ID:          id,
		Name:        name,
		Up:          operStatus == operStatusUp,
		DHCPEnabled: flags&adapterDHCPEnabled != 0,
		IPv4:        flags&adapterIPv4Enabled != 0,
	}
	switch ifType {
	case ifTypeEthernet:
		d.LinkType = LinkEthernet
	case ifTypeWireless:
		d.LinkType = LinkWireless
	case ifTypeLoopback:
		d.LinkType = LinkLoopback
	case ifTypeTunnel:
		d.LinkType = LinkTunnel
	default:
		d.LinkType = LinkOther
	}
	return d
}
