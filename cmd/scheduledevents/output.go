package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muurk/scheduledevents/internal/dhcp"
	"github.com/muurk/scheduledevents/internal/discovery"
	"github.com/muurk/scheduledevents/internal/events"
	"github.com/muurk/scheduledevents/internal/ui"
	"github.com/muurk/scheduledevents/internal/urls"
)

type attemptOutput struct {
	Interface  string `json:"interface"`
	Name       string `json:"name,omitempty"`
	Outcome    string `json:"outcome"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type discoveryResult struct {
	Endpoint string          `json:"endpoint,omitempty"`
	Address  string          `json:"address,omitempty"`
	Attempts []attemptOutput `json:"attempts"`
	Error    string          `json:"error,omitempty"`
}

func discoveryOutput(report *discovery.Report, err error) *discoveryResult {
	out := &discoveryResult{Attempts: []attemptOutput{}}
	if err != nil {
		out.Error = err.Error()
	}
	if report == nil {
		return out
	}
	if report.Endpoint != nil {
		out.Endpoint = report.Endpoint.String()
		out.Address = report.Endpoint.Address.String()
	}
	for _, a := range report.Attempts {
		entry := attemptOutput{
			Interface:  a.Interface.ID,
			Outcome:    a.Outcome.String(),
			DurationMS: a.Duration.Milliseconds(),
		}
		if a.Interface.Name != a.Interface.ID {
			entry.Name = a.Interface.Name
		}
		if a.Err != nil {
			entry.Error = a.Err.Error()
		}
		out.Attempts = append(out.Attempts, entry)
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

func printDiscovery(w io.Writer, report *discovery.Report, err error, verbose bool) error {
	if verbose && report != nil && len(report.Attempts) > 0 {
		rows := make([][]string, 0, len(report.Attempts))
		for _, a := range report.Attempts {
			detail := ""
			if a.Err != nil {
				detail = a.Err.Error()
			}
			rows = append(rows, []string{
				a.Interface.String(),
				a.Outcome.String(),
				a.Duration.Round(time.Millisecond).String(),
				detail,
			})
		}
		ui.PrintTable(w, []string{"Interface", "Outcome", "Duration", "Detail"}, rows)
	}

	if err != nil {
		ui.PrintResult(w, ui.NewFailureResult("Discovery failed", err, troubleshooting(err)))
		return err
	}

	if report.Endpoint == nil {
		ui.PrintResult(w, ui.NewWarningResult("No endpoint found", troubleshooting(errNoEndpoint)).
			AddDetail("Interfaces", fmt.Sprintf("%d tried", len(report.Attempts))))
		return nil
	}

	found := report.Attempts[len(report.Attempts)-1]
	ui.PrintResult(w, ui.NewSuccessResult("Endpoint discovered").
		AddDetail("Endpoint", report.Endpoint.String()).
		AddDetail("Address", report.Endpoint.Address.String()).
		AddDetail("Interface", found.Interface.String()))
	return nil
}

func printDocument(w io.Writer, endpoint string, doc *events.Document) {
	ui.PrintCommandHeader(w, "Scheduled Events", "scheduledevents events",
		ui.Detail{Key: "Endpoint", Value: endpoint},
		ui.Detail{Key: "Incarnation", Value: doc.DocumentIncarnation},
	)

	if len(doc.Events) == 0 {
		ui.PrintResult(w, ui.NewSuccessResult("No scheduled events"))
		return
	}

	rows := make([][]string, 0, len(doc.Events))
	for _, e := range doc.Events {
		notBefore := "-"
		if t, ok := e.NotBeforeTime(); ok {
			notBefore = t.Local().Format("2006-01-02 15:04:05 MST")
		}
		rows = append(rows, []string{
			e.EventID,
			e.EventType,
			e.EventStatus,
			notBefore,
			strings.Join(e.Resources, ", "),
		})
	}
	ui.PrintTable(w, []string{"Event", "Type", "Status", "Not Before", "Resources"}, rows)
}

// fail prints a failure box in detailed mode and returns err
func (o *options) fail(w io.Writer, title string, err error) error {
	if o.format == formatDetailed {
		ui.PrintResult(w, ui.NewFailureResult(title, err, troubleshooting(err)))
	}
	return err
}

// troubleshooting returns user-facing hints for err
func troubleshooting(err error) []string {
	switch {
	case errors.Is(err, dhcp.ErrUnsupportedPlatform):
		return []string{
			"DHCP option discovery is available on Windows and Linux only",
			"Pass --endpoint to use a known endpoint",
		}
	case dhcp.IsSubsystemInitError(err):
		return []string{
			"Windows: check that the DHCP Client service is running",
			"Linux: run as root or grant CAP_NET_RAW to send DHCP requests",
			"See " + urls.DHCPClientOptions,
		}
	case discovery.IsTimeout(err):
		return []string{
			"The DHCP server did not answer within the timeout",
			"Raise --timeout, or use --timeout-policy skip to try the remaining interfaces",
		}
	case errors.Is(err, errNoEndpoint):
		return []string{
			"No active DHCP-configured Ethernet interface carries option 245",
			"Run 'scheduledevents discover --verbose' to see each interface",
			"Pass --endpoint to use a known endpoint",
			"See " + urls.ScheduledEvents,
		}
	case events.IsNetworkError(err):
		return []string{
			"Check that the endpoint is reachable from this machine",
			"The service only answers from inside its virtual network",
		}
	case events.IsHTTPError(err):
		return []string{
			"Approvals must carry the current DocumentIncarnation",
			"Run 'scheduledevents events' and retry with the current event IDs",
			"See " + urls.ScheduledEvents,
		}
	}
	return nil
}
