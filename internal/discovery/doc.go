// Package discovery locates the scheduled events endpoint from the DHCP
// control endpoint option (245).
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Enumerates network interfaces and keeps the Ethernet ones that are up,
//     IPv4-enabled and DHCP-configured, in enumeration order
//  2. Queries option 245 on each candidate, one at a time
//  3. Skips interfaces where the option is absent, malformed or the query fails
//  4. Stops at the first interface returning exactly 4 bytes
//  5. Builds http://<address>:8080/metadata/latest/scheduledevents
//
// # Usage Example
//
//	q := dhcp.NewQuerier(dhcp.NewSystemSubsystem(logger), logger)
//	d := discovery.NewDiscoverer(netif.System(), q, logger)
//
//	endpoint, err := d.Discover(ctx)
//	if err != nil {
//	    // timeout or the DHCP client could not be initialized
//	    log.Fatal(err)
//	}
//	if endpoint == nil {
//	    // no interface carries the option
//	}
//
// # Deadlines
//
// Each query runs on its own goroutine bounded by Timeout (3 minutes by
// default). The platform call cannot be interrupted, so at the deadline the
// Discoverer stops waiting and the goroutine finishes in the background,
// releasing its DHCP session when the call returns. By default a deadline
// aborts the whole run; TimeoutSkip moves on to the next interface instead.
package discovery
