// Package netif enumerates network interfaces and selects the ones the
// DHCP query should be attempted on.
//
// An interface is a candidate when it is an Ethernet link, operationally
// up, IPv4-enabled and configured by DHCP. Candidates keep the order the
// operating system reports them in; that order decides which endpoint wins
// when several interfaces carry the option.
//
//	candidates, err := netif.Candidates(netif.System())
package netif
