// Package logging provides structured logging for the scheduled events tools.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used throughout the module. The CLI initializes it once; library
// packages (dhcp, discovery, events) receive a *zap.Logger and fall back to a
// no-op logger when none is given.
//
// # Log Levels
//
//   - Debug: option payload dumps, buffer resizes, HTTP request/response lines
//   - Info: discovery progress (candidate interfaces, chosen endpoint)
//   - Warn: per-interface failures that discovery suppresses
//   - Error: fatal discovery failures (timeout, DHCP subsystem unavailable)
//
// # Configuration
//
// Logging is silent unless a level is passed or SCHEDULEDEVENTS_LOG_LEVEL
// is set:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Output goes to stderr in console format so that stdout stays usable for
// JSON output.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
