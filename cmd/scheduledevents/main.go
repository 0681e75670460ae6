// Scheduledevents discovers the scheduled events endpoint of the host
// control plane and reads or approves pending maintenance events.
//
// The endpoint address is delivered in DHCP option 245. Discovery queries
// the option on each active Ethernet interface and builds
// http://<address>:8080/metadata/latest/scheduledevents from the first
// 4-byte answer.
//
// Usage:
//
//	scheduledevents [command] [flags]
//
// See 'scheduledevents --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/muurk/scheduledevents/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
