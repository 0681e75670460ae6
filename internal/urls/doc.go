// Package urls provides centralized constants for the documentation URLs
// printed in troubleshooting hints.
//
// Usage:
//
//	import "github.com/muurk/scheduledevents/internal/urls"
//
//	fmt.Printf("For more information, see: %s\n", urls.ScheduledEvents)
package urls
