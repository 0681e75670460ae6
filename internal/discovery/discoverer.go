package discovery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/scheduledevents/internal/dhcp"
	"github.com/muurk/scheduledevents/internal/logging"
	"github.com/muurk/scheduledevents/internal/netif"
)

const (
	// DefaultTimeout bounds each per-interface query
	DefaultTimeout = 3 * time.Minute

	// DefaultApplicationID is the request id sent with every option query
	DefaultApplicationID = "WindowsAzureGuestAgent"
)

// OptionQuerier runs a single DHCP option query. *dhcp.Querier implements it.
type OptionQuerier interface {
	Query(req dhcp.Request) (dhcp.Result, error)
}

// TimeoutPolicy decides what a per-interface deadline does to the run
type TimeoutPolicy int

const (
	// TimeoutAbort fails the whole discovery run
	TimeoutAbort TimeoutPolicy = iota

	// TimeoutSkip records the timeout and moves to the next interface
	TimeoutSkip
)

// String returns the config name of the policy
func (p TimeoutPolicy) String() string {
	switch p {
	case TimeoutSkip:
		return "skip"
	default:
		return "abort"
	}
}

// ParseTimeoutPolicy accepts "abort" or "skip"; empty means abort
func ParseTimeoutPolicy(s string) (TimeoutPolicy, error) {
	switch s {
	case "", "abort":
		return TimeoutAbort, nil
	case "skip":
		return TimeoutSkip, nil
	default:
		return TimeoutAbort, fmt.Errorf("unknown timeout policy %q (want abort or skip)", s)
	}
}

// Outcome is how a single interface attempt ended
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeAbsent
	OutcomeMalformed
	OutcomeFailed
	OutcomeTimeout
)

// String returns the lowercase name of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeAbsent:
		return "absent"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Attempt records one per-interface query
type Attempt struct {
	Interface netif.Descriptor
	Outcome   Outcome
	Err       error
	Duration  time.Duration
}

// Report is the result of a discovery run. Endpoint is nil when no
// interface produced a usable address.
type Report struct {
	Endpoint *Endpoint
	Attempts []Attempt
}

// Discoverer finds the scheduled events endpoint by querying the control
// endpoint option on each candidate interface in turn
type Discoverer struct {
	Inventory     netif.Inventory
	Querier       OptionQuerier
	OptionID      uint32
	ApplicationID string
	Timeout       time.Duration
	TimeoutPolicy TimeoutPolicy

	logger *zap.Logger
}

// NewDiscoverer returns a Discoverer with the default option, application
// id, deadline and abort-on-timeout policy
func NewDiscoverer(inv netif.Inventory, q OptionQuerier, logger *zap.Logger) *Discoverer {
	return &Discoverer{
		Inventory:     inv,
		Querier:       q,
		OptionID:      dhcp.ControlEndpointOption,
		ApplicationID: DefaultApplicationID,
		Timeout:       DefaultTimeout,
		TimeoutPolicy: TimeoutAbort,
		logger:        logging.OrNop(logger),
	}
}

// Discover returns the endpoint, or nil with a nil error when no interface
// carries a usable option
func (d *Discoverer) Discover(ctx context.Context) (*Endpoint, error) {
	report, err := d.Run(ctx)
	if err != nil {
		return nil, err
	}
	return report.Endpoint, nil
}

// Run tries each candidate interface in enumeration order and stops at the
// first one returning a 4-byte option value. Per-interface failures are
// recorded and skipped. Subsystem initialization failures, context
// cancellation and (under TimeoutAbort) deadlines end the run with an error.
func (d *Discoverer) Run(ctx context.Context) (*Report, error) {
	logger := d.log()

	candidates, err := netif.Candidates(d.Inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate network interfaces: %w", err)
	}

	report := &Report{}
	if len(candidates) == 0 {
		logger.Info("No eligible network interfaces")
		return report, nil
	}

	logger.Debug("Starting endpoint discovery",
		zap.Int("candidates", len(candidates)),
		zap.Uint32("option", d.optionID()),
		zap.Duration("timeout", d.timeout()),
		zap.Stringer("timeout_policy", d.TimeoutPolicy),
	)

	for _, iface := range candidates {
		attempt, addr, fatal := d.try(ctx, iface)
		report.Attempts = append(report.Attempts, attempt)

		fields := []zap.Field{
			zap.String("interface", iface.ID),
			zap.Stringer("outcome", attempt.Outcome),
			zap.Duration("duration", attempt.Duration),
		}
		if attempt.Err != nil {
			fields = append(fields, zap.Error(attempt.Err))
		}
		logger.Debug("Interface attempt finished", fields...)

		if fatal != nil {
			return report, fatal
		}
		if attempt.Outcome == OutcomeFound {
			endpoint := NewEndpoint(addr)
			report.Endpoint = &endpoint
			logger.Info("Endpoint discovered",
				zap.String("interface", iface.ID),
				zap.Stringer("endpoint", endpoint),
			)
			return report, nil
		}
	}

	logger.Info("No endpoint found", zap.Int("attempts", len(report.Attempts)))
	return report, nil
}

type queryResult struct {
	res dhcp.Result
	err error
}

// try queries one interface on its own goroutine. The returned error is
// non-nil only when the whole run must stop.
func (d *Discoverer) try(ctx context.Context, iface netif.Descriptor) (Attempt, Address, error) {
	attempt := Attempt{Interface: iface}
	start := time.Now()

	req, err := dhcp.NewRequest(iface.ID, d.optionID(), d.ApplicationID)
	if err != nil {
		attempt.Outcome = OutcomeFailed
		attempt.Err = err
		return attempt, Address{}, nil
	}

	// Buffered so an abandoned worker can still deliver and exit
	done := make(chan queryResult, 1)
	go func() {
		res, err := d.Querier.Query(req)
		done <- queryResult{res: res, err: err}
	}()

	timer := time.NewTimer(d.timeout())
	defer timer.Stop()

	select {
	case r := <-done:
		attempt.Duration = time.Since(start)
		return d.classify(attempt, r)

	case <-timer.C:
		attempt.Duration = time.Since(start)
		attempt.Outcome = OutcomeTimeout
		attempt.Err = &Error{
			Type:        ErrTypeTimeout,
			InterfaceID: iface.ID,
			Message:     fmt.Sprintf("no DHCP response within %s", d.timeout()),
		}
		if d.TimeoutPolicy == TimeoutSkip {
			return attempt, Address{}, nil
		}
		return attempt, Address{}, attempt.Err

	case <-ctx.Done():
		attempt.Duration = time.Since(start)
		attempt.Outcome = OutcomeFailed
		attempt.Err = ctx.Err()
		return attempt, Address{}, fmt.Errorf("discovery cancelled: %w", ctx.Err())
	}
}

func (d *Discoverer) classify(attempt Attempt, r queryResult) (Attempt, Address, error) {
	if r.err != nil {
		attempt.Outcome = OutcomeFailed
		attempt.Err = r.err
		if dhcp.IsSubsystemInitError(r.err) {
			return attempt, Address{}, r.err
		}
		return attempt, Address{}, nil
	}

	value, ok := r.res.Bytes()
	if !ok {
		attempt.Outcome = OutcomeAbsent
		return attempt, Address{}, nil
	}

	addr, err := ParseAddress(value)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.InterfaceID = attempt.Interface.ID
		}
		attempt.Outcome = OutcomeMalformed
		attempt.Err = err
		return attempt, Address{}, nil
	}

	attempt.Outcome = OutcomeFound
	return attempt, addr, nil
}

func (d *Discoverer) optionID() uint32 {
	if d.OptionID == 0 {
		return dhcp.ControlEndpointOption
	}
	return d.OptionID
}

func (d *Discoverer) timeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultTimeout
	}
	return d.Timeout
}

func (d *Discoverer) log() *zap.Logger {
	return logging.OrNop(d.logger)
}
