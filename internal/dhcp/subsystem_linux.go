//go:build linux

package dhcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/insomniacslk/dhcp/dhcpv4/nclient4"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/muurk/scheduledevents/internal/logging"
)

const (
	// DefaultExchangeTimeout bounds a single DISCOVER/OFFER round trip
	DefaultExchangeTimeout = 10 * time.Second

	// DefaultExchangeRetries is the number of DISCOVER retransmissions
	DefaultExchangeRetries = 4

	// optionClasslessRoutes is the Microsoft classless static route option
	optionClasslessRoutes = 249
)

// linuxSubsystem answers option requests from a DHCPOFFER obtained by
// broadcasting a DHCPDISCOVER on the adapter. Offers are cached per adapter
// until the last session is cleaned up.
type linuxSubsystem struct {
	session sharedSession

	mu     sync.Mutex
	offers map[string]*dhcpv4.DHCPv4

	timeout  time.Duration
	retries  int
	logger   *zap.Logger
	probe    func() error
	exchange func(ctx context.Context, adapter string, option uint32) (*dhcpv4.DHCPv4, error)
}

// NewSystemSubsystem returns a raw-socket DHCP client on the named adapter.
// It needs CAP_NET_RAW; Initialize fails without it.
func NewSystemSubsystem(logger *zap.Logger) Subsystem {
	s := &linuxSubsystem{
		timeout: DefaultExchangeTimeout,
		retries: DefaultExchangeRetries,
		logger:  logging.OrNop(logger),
		probe:   probeRawSocket,
	}
	s.exchange = s.discoverOffer
	s.session.open = s.open
	s.session.close = s.close
	return s
}

// probeRawSocket checks that the process may open the packet socket the
// DHCP exchange uses
func probeRawSocket() error {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("cannot open a raw DHCP socket (needs CAP_NET_RAW): %w", err)
	}
	return unix.Close(fd)
}

func (s *linuxSubsystem) Initialize() (uint32, error) {
	return s.session.acquire()
}

func (s *linuxSubsystem) Cleanup() error {
	return s.session.release()
}

func (s *linuxSubsystem) open() (uint32, error) {
	if err := s.probe(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.offers = make(map[string]*dhcpv4.DHCPv4)
	s.mu.Unlock()
	return 2, nil
}

func (s *linuxSubsystem) close() error {
	s.mu.Lock()
	s.offers = nil
	s.mu.Unlock()
	return nil
}

func (s *linuxSubsystem) RequestParams(flags RequestFlags, adapter string, recv *Param, buf []byte, size *uint32, requestID string) uint32 {
	recv.Data = nil
	if recv.OptionID > MaxOptionID {
		return StatusInvalidParameter
	}

	offer, err := s.offer(adapter, recv.OptionID)
	if err != nil {
		s.logger.Warn("DHCP exchange failed",
			zap.String("interface", adapter),
			zap.Error(err),
		)
		return statusFromError(err)
	}

	code := dhcpv4.GenericOptionCode(recv.OptionID)
	return fillParam(offer.Options.Get(code), offer.Options.Has(code), recv, buf, size)
}

func (s *linuxSubsystem) offer(adapter string, option uint32) (*dhcpv4.DHCPv4, error) {
	s.mu.Lock()
	cached, ok := s.offers[adapter]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	budget := s.timeout * time.Duration(s.retries+1)
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	offer, err := s.exchange(ctx, adapter, option)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.offers != nil {
		s.offers[adapter] = offer
	}
	s.mu.Unlock()
	return offer, nil
}

func (s *linuxSubsystem) discoverOffer(ctx context.Context, adapter string, option uint32) (*dhcpv4.DHCPv4, error) {
	client, err := nclient4.New(adapter,
		nclient4.WithTimeout(s.timeout),
		nclient4.WithRetry(s.retries),
	)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	offer, err := client.DiscoverOffer(ctx, dhcpv4.WithRequestedOptions(
		dhcpv4.GenericOptionCode(option),
		dhcpv4.OptionRouter,
		dhcpv4.GenericOptionCode(optionClasslessRoutes),
	))
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("interface", adapter),
		zap.Stringer("server", offer.ServerIdentifier()),
		zap.Stringer("your_ip", offer.YourIPAddr),
		zap.Any("routers", offer.Router()),
	}
	if raw := offer.Options.Get(dhcpv4.GenericOptionCode(optionClasslessRoutes)); raw != nil {
		var routes dhcpv4.Routes
		if err := routes.FromBytes(raw); err == nil {
			fields = append(fields, zap.Int("classless_routes", len(routes)))
		}
	}
	s.logger.Debug("DHCP offer received", fields...)

	return offer, nil
}
