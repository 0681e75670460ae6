// Package dhcp queries the platform DHCP client for the value of a single
// option on a named adapter.
//
// The platform API (Subsystem) follows the Windows DHCP client API shape:
// a process-wide session bracketed by Initialize/Cleanup, and a blocking
// RequestParams call that fills a caller-supplied buffer and reports
// StatusMoreData (124) when the buffer is too small. Querier hides that
// protocol behind a typed Result:
//
//	q := dhcp.NewQuerier(dhcp.NewSystemSubsystem(logger), logger)
//	req, _ := dhcp.NewRequest(adapterID, dhcp.ControlEndpointOption, "")
//	res, err := q.Query(req)
//	if err != nil {
//	    // dhcp.IsSubsystemInitError(err) or dhcp.IsQueryFailed(err)
//	}
//	if value, ok := res.Bytes(); ok {
//	    // option present; value may be empty
//	}
//
// # Buffer Growth
//
// Each query starts with a 1 KiB buffer and doubles it on every
// StatusMoreData reply, up to MaxAttempts requests. Running out of attempts
// is reported as ErrTypeBufferExhausted.
//
// # Backends
//
//   - Windows (amd64): dhcpcsvc.dll via golang.org/x/sys/windows.
//   - Linux: a DHCPDISCOVER broadcast on the adapter (insomniacslk/dhcp
//     nclient4); the option is read from the OFFER. Requires CAP_NET_RAW.
//   - Other platforms: Initialize fails with ErrUnsupportedPlatform.
//
// # Blocking
//
// Query blocks for as long as the platform call does and takes no context.
// Callers that need a deadline run it on their own goroutine (see package
// discovery); the session is still released when the call eventually
// returns.
package dhcp
