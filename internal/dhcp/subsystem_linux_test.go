//go:build linux

package dhcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"go.uber.org/zap"
)

func newTestLinuxSubsystem(t *testing.T, options ...dhcpv4.Option) (*linuxSubsystem, *int) {
	t.Helper()
	exchanges := 0
	s := NewSystemSubsystem(zap.NewNop()).(*linuxSubsystem)
	s.probe = func() error { return nil }
	s.exchange = func(ctx context.Context, adapter string, option uint32) (*dhcpv4.DHCPv4, error) {
		exchanges++
		modifiers := make([]dhcpv4.Modifier, 0, len(options))
		for _, o := range options {
			modifiers = append(modifiers, dhcpv4.WithOption(o))
		}
		return dhcpv4.New(modifiers...)
	}
	return s, &exchanges
}

func TestLinuxSubsystem_OptionPresent(t *testing.T) {
	s, _ := newTestLinuxSubsystem(t,
		dhcpv4.OptGeneric(dhcpv4.GenericOptionCode(ControlEndpointOption), []byte{10, 0, 0, 4}),
	)

	q := NewQuerier(s, nil)
	res, err := q.Query(mustRequest(t, "eth0"))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	got, ok := res.Bytes()
	if !ok || !bytes.Equal(got, []byte{10, 0, 0, 4}) {
		t.Errorf("Query() = %v, %v, want [10 0 0 4], true", got, ok)
	}
}

func TestLinuxSubsystem_OptionMissing(t *testing.T) {
	s, _ := newTestLinuxSubsystem(t)

	q := NewQuerier(s, nil)
	res, err := q.Query(mustRequest(t, "eth0"))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.IsPresent() {
		t.Errorf("Query() = %v, want absent", res)
	}
}

func TestLinuxSubsystem_CachesOfferWithinSession(t *testing.T) {
	s, exchanges := newTestLinuxSubsystem(t,
		dhcpv4.OptGeneric(dhcpv4.GenericOptionCode(ControlEndpointOption), []byte{10, 0, 0, 4}),
	)

	if _, err := s.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		buf := make([]byte, 16)
		size := uint32(len(buf))
		recv := &Param{OptionID: ControlEndpointOption}
		if status := s.RequestParams(RequestSynchronous, "eth0", recv, buf, &size, ""); status != StatusSuccess {
			t.Fatalf("RequestParams() = %d, want success", status)
		}
	}
	if *exchanges != 1 {
		t.Errorf("exchanges = %d, want 1 while a session is open", *exchanges)
	}

	_ = s.Cleanup()
	if s.offers != nil {
		t.Error("offer cache should be dropped after the last cleanup")
	}
}

func TestLinuxSubsystem_SmallBuffer(t *testing.T) {
	value := bytes.Repeat([]byte{7}, 40)
	s, _ := newTestLinuxSubsystem(t,
		dhcpv4.OptGeneric(dhcpv4.GenericOptionCode(ControlEndpointOption), value),
	)
	_, _ = s.Initialize()
	defer s.Cleanup()

	buf := make([]byte, 8)
	size := uint32(len(buf))
	recv := &Param{OptionID: ControlEndpointOption}
	if status := s.RequestParams(RequestSynchronous, "eth0", recv, buf, &size, ""); status != StatusMoreData {
		t.Fatalf("RequestParams() = %d, want %d", status, StatusMoreData)
	}
	if size != 40 {
		t.Errorf("size = %d, want 40", size)
	}
}

func TestLinuxSubsystem_ExchangeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantInit bool
		wantCode uint32
	}{
		{"no offer", errors.New("no offer"), false, statusGenFailure},
		{"missing file is not absence", fmt.Errorf("open: %w", syscall.ENOENT), false, statusGenFailure},
		{"permission denied", fmt.Errorf("socket: %w", syscall.EPERM), true, StatusAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSystemSubsystem(nil).(*linuxSubsystem)
			s.probe = func() error { return nil }
			s.exchange = func(ctx context.Context, adapter string, option uint32) (*dhcpv4.DHCPv4, error) {
				return nil, tt.err
			}

			res, err := NewQuerier(s, nil).Query(mustRequest(t, "eth0"))
			if err == nil {
				t.Fatalf("Query() = %v, want error", res)
			}
			if IsSubsystemInitError(err) != tt.wantInit {
				t.Errorf("IsSubsystemInitError(%v) = %v, want %v", err, !tt.wantInit, tt.wantInit)
			}
			if Code(err) != tt.wantCode {
				t.Errorf("Code() = %d, want %d", Code(err), tt.wantCode)
			}
		})
	}
}

func TestLinuxSubsystem_ProbeFailure(t *testing.T) {
	exchanges := 0
	s := NewSystemSubsystem(nil).(*linuxSubsystem)
	s.probe = func() error { return fmt.Errorf("cannot open a raw DHCP socket: %w", syscall.EPERM) }
	s.exchange = func(ctx context.Context, adapter string, option uint32) (*dhcpv4.DHCPv4, error) {
		exchanges++
		return dhcpv4.New()
	}

	_, err := NewQuerier(s, nil).Query(mustRequest(t, "eth0"))
	if !IsSubsystemInitError(err) {
		t.Fatalf("IsSubsystemInitError(%v) = false, want true", err)
	}
	if !errors.Is(err, syscall.EPERM) {
		t.Errorf("error should wrap EPERM, got %v", err)
	}
	if exchanges != 0 {
		t.Errorf("exchanges = %d, want 0 after a failed probe", exchanges)
	}
	if s.session.refs != 0 {
		t.Errorf("refs = %d, want 0", s.session.refs)
	}
}

func TestLinuxSubsystem_OptionOutOfRange(t *testing.T) {
	s, exchanges := newTestLinuxSubsystem(t,
		dhcpv4.OptGeneric(dhcpv4.GenericOptionCode(ControlEndpointOption), []byte{10, 0, 0, 4}),
	)
	_, _ = s.Initialize()
	defer s.Cleanup()

	buf := make([]byte, 16)
	size := uint32(len(buf))
	recv := &Param{OptionID: 256 + ControlEndpointOption}
	if status := s.RequestParams(RequestSynchronous, "eth0", recv, buf, &size, ""); status != StatusInvalidParameter {
		t.Fatalf("RequestParams() = %d, want %d", status, StatusInvalidParameter)
	}
	if recv.Data != nil || *exchanges != 0 {
		t.Errorf("Data=%v exchanges=%d, want no lookup", recv.Data, *exchanges)
	}
}

func TestLinuxSubsystem_RefCount(t *testing.T) {
	s, _ := newTestLinuxSubsystem(t)

	_, _ = s.Initialize()
	_, _ = s.Initialize()
	_ = s.Cleanup()
	if s.offers == nil {
		t.Error("cache dropped while a session is still open")
	}
	_ = s.Cleanup()
	if s.session.refs != 0 || s.offers != nil {
		t.Errorf("refs=%d offers=%v after final cleanup", s.session.refs, s.offers)
	}

	// extra cleanup is harmless
	_ = s.Cleanup()
	if s.session.refs != 0 {
		t.Errorf("refs = %d, want 0", s.session.refs)
	}
}
