package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/scheduledevents/internal/config"
	"github.com/muurk/scheduledevents/internal/dhcp"
	"github.com/muurk/scheduledevents/internal/discovery"
	"github.com/muurk/scheduledevents/internal/events"
	"github.com/muurk/scheduledevents/internal/logging"
	"github.com/muurk/scheduledevents/internal/netif"
	"github.com/muurk/scheduledevents/internal/ui"
	"github.com/muurk/scheduledevents/internal/version"
)

const (
	formatDetailed = "detailed"
	formatJSON     = "json"
)

var errNoEndpoint = errors.New("no scheduled events endpoint found")

// options holds the persistent flags, the resolved configuration and the
// platform hooks
type options struct {
	configPath string
	logLevel   string
	endpoint   string
	format     string

	cfg *config.Config

	inventory func() netif.Inventory
	subsystem func(*zap.Logger) dhcp.Subsystem
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithOptions(&options{
		inventory: netif.System,
		subsystem: dhcp.NewSystemSubsystem,
	})
}

func newRootCmdWithOptions(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "scheduledevents",
		Short: "Scheduled events endpoint discovery and approval",
		Long: `Discover the scheduled events endpoint from DHCP option 245 and read or
approve pending maintenance events.

Discovery tries every active, DHCP-configured Ethernet interface in order
and stops at the first one whose DHCP server supplies a 4-byte address.
Use --endpoint to skip discovery.`,
		Version:       version.Version,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	// Disable automatic completion command generation
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: OS config dir/scheduledevents/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)
	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "Scheduled events endpoint URI (skips discovery)")
	root.PersistentFlags().StringVar(&opts.format, "format", formatDetailed, "Output format (detailed, json)")

	root.AddCommand(
		newDiscoverCmd(opts),
		newEventsCmd(opts),
		newApproveCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load applies config file, then flags, then starts logging
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Client.Endpoint = o.endpoint
	}

	switch o.format {
	case formatDetailed, formatJSON:
	default:
		return fmt.Errorf("invalid --format %q (want %s or %s)", o.format, formatDetailed, formatJSON)
	}

	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}

// newDiscoverer wires the DHCP querier and interface inventory from config
func (o *options) newDiscoverer() (*discovery.Discoverer, error) {
	cfg := o.cfg

	policy, err := discovery.ParseTimeoutPolicy(cfg.Discovery.TimeoutPolicy)
	if err != nil {
		return nil, err
	}

	dhcpLogger := logging.Named("dhcp")
	q := dhcp.NewQuerier(o.subsystem(dhcpLogger), dhcpLogger)
	q.Flags = cfg.RequestFlags()
	q.InitialBufferSize = cfg.Discovery.InitialBufferSize
	q.MaxAttempts = cfg.Discovery.MaxBufferAttempts

	inv := netif.Only(o.inventory(), cfg.Discovery.Interfaces...)

	d := discovery.NewDiscoverer(inv, q, logging.Named("discovery"))
	d.OptionID = cfg.Discovery.OptionID
	d.ApplicationID = cfg.Discovery.ApplicationID
	d.Timeout = cfg.DiscoveryTimeout()
	d.TimeoutPolicy = policy
	return d, nil
}

// resolveEndpoint returns the configured endpoint, or discovers one
func (o *options) resolveEndpoint(ctx context.Context) (string, error) {
	if o.cfg.Client.Endpoint != "" {
		logging.Debug("Using configured endpoint", zap.String("endpoint", o.cfg.Client.Endpoint))
		return o.cfg.Client.Endpoint, nil
	}

	d, err := o.newDiscoverer()
	if err != nil {
		return "", err
	}
	endpoint, err := d.Discover(ctx)
	if err != nil {
		return "", fmt.Errorf("endpoint discovery failed: %w", err)
	}
	if endpoint == nil {
		return "", errNoEndpoint
	}
	return endpoint.String(), nil
}

func (o *options) newClient(endpoint string) *events.Client {
	client := events.NewClient(endpoint)
	client.SetTimeout(o.cfg.ClientTimeout())
	return client
}

// discoverCmd runs endpoint discovery
func newDiscoverCmd(opts *options) *cobra.Command {
	var (
		verbose       bool
		timeout       int
		timeoutPolicy string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover the scheduled events endpoint",
		Long: `Query DHCP option 245 on each eligible interface and print the endpoint.

Interfaces are tried one at a time in the order the OS reports them.
Interfaces without the option, or with a value that is not 4 bytes, are
skipped. By default an interface that does not answer within the timeout
stops discovery; --timeout-policy skip moves on instead.`,
		Example: `  # Discover with defaults (3 minute timeout per interface)
  scheduledevents discover

  # Show every interface attempt
  scheduledevents discover --verbose

  # JSON output for scripting
  scheduledevents discover --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Suppress usage on execution errors (we're past argument parsing)
			cmd.SilenceUsage = true

			cfg := opts.cfg
			if cmd.Flags().Changed("timeout") {
				cfg.Discovery.TimeoutSeconds = timeout
			}
			if cmd.Flags().Changed("timeout-policy") {
				cfg.Discovery.TimeoutPolicy = timeoutPolicy
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			d, err := opts.newDiscoverer()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.format == formatDetailed {
				ui.PrintCommandHeader(out, "Endpoint Discovery", "scheduledevents discover",
					ui.Detail{Key: "Option", Value: strconv.FormatUint(uint64(d.OptionID), 10)},
					ui.Detail{Key: "Timeout", Value: d.Timeout.String()},
					ui.Detail{Key: "On timeout", Value: d.TimeoutPolicy.String()},
				)
			}

			report, runErr := d.Run(cmd.Context())
			if opts.format == formatJSON {
				if err := writeJSON(out, discoveryOutput(report, runErr)); err != nil {
					return err
				}
				return runErr
			}
			return printDiscovery(out, report, runErr, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show every interface attempt")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "Per-interface timeout in seconds (default from config, 180)")
	cmd.Flags().StringVar(&timeoutPolicy, "timeout-policy", "", "What an interface timeout does: abort or skip")
	return cmd
}

// eventsCmd prints the scheduled events document
func newEventsCmd(opts *options) *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show scheduled events",
		Long: `Fetch the scheduled events document from the endpoint.

The endpoint is discovered unless --endpoint or client.endpoint is set.`,
		Example: `  # Show all events
  scheduledevents events

  # Only events that have not started
  scheduledevents events --pending

  # Known endpoint, JSON output
  scheduledevents events --endpoint http://10.0.0.4:8080/metadata/latest/scheduledevents --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := cmd.OutOrStdout()

			endpoint, err := opts.resolveEndpoint(cmd.Context())
			if err != nil {
				return opts.fail(out, "Endpoint not available", err)
			}

			doc, err := opts.newClient(endpoint).GetDocument(cmd.Context())
			if err != nil {
				return opts.fail(out, "Failed to fetch scheduled events", err)
			}
			if pending {
				doc = &events.Document{DocumentIncarnation: doc.DocumentIncarnation, Events: doc.Pending()}
			}

			if opts.format == formatJSON {
				return writeJSON(out, doc)
			}
			printDocument(out, endpoint, doc)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "Only show events that have not started")
	return cmd
}

// approveCmd starts events ahead of their NotBefore time
func newApproveCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "approve [event-id...]",
		Short: "Approve scheduled events so they start now",
		Long: `Approve the named events, or every pending event with --all.

The approval carries the current DocumentIncarnation. If the document has
changed since it was fetched the service rejects the request; fetch the
events again and retry.`,
		Example: `  # Approve one event
  scheduledevents approve 602d9444-d2cd-49c7-8624-8643e7171297

  # Approve everything that is scheduled
  scheduledevents approve --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with event IDs")
			}
			if !all && len(args) == 0 {
				return fmt.Errorf("specify event IDs or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := cmd.OutOrStdout()

			endpoint, err := opts.resolveEndpoint(cmd.Context())
			if err != nil {
				return opts.fail(out, "Endpoint not available", err)
			}

			client := opts.newClient(endpoint)
			doc, err := client.GetDocument(cmd.Context())
			if err != nil {
				return opts.fail(out, "Failed to fetch scheduled events", err)
			}

			ids := args
			if all {
				for _, e := range doc.Pending() {
					ids = append(ids, e.EventID)
				}
				if len(ids) == 0 {
					if opts.format == formatJSON {
						return writeJSON(out, &events.Approval{DocumentIncarnation: doc.DocumentIncarnation, StartRequests: []events.StartRequest{}})
					}
					ui.PrintResult(out, ui.NewWarningResult("Nothing to approve", nil).
						AddDetail("Incarnation", doc.DocumentIncarnation))
					return nil
				}
			}

			approval, err := events.NewApproval(doc, ids...)
			if err != nil {
				return opts.fail(out, "Invalid approval", err)
			}

			if err := client.Approve(cmd.Context(), approval); err != nil {
				return opts.fail(out, "Approval rejected", err)
			}

			logging.Info("Events approved",
				zap.String("incarnation", approval.DocumentIncarnation),
				zap.Int("count", len(approval.StartRequests)),
			)

			if opts.format == formatJSON {
				return writeJSON(out, approval)
			}
			result := ui.NewSuccessResult("Events approved").
				AddDetail("Endpoint", endpoint).
				AddDetail("Incarnation", approval.DocumentIncarnation)
			for _, r := range approval.StartRequests {
				result.AddDetail("Event", r.EventID)
			}
			ui.PrintResult(out, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Approve every pending event")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scheduledevents %s\n", version.Full())
		},
	}
}
