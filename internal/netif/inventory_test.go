package netif

import (
	"errors"
	"testing"
)

func eth(id string) Descriptor {
	return Descriptor{ID: id, Name: id, LinkType: LinkEthernet, Up: true, DHCPEnabled: true, IPv4: true}
}

func TestDescriptor_Eligible(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Descriptor)
		want   bool
	}{
		{"ethernet up dhcp ipv4", func(d *Descriptor) {}, true},
		{"wireless", func(d *Descriptor) { d.LinkType = LinkWireless }, false},
		{"loopback", func(d *Descriptor) { d.LinkType = LinkLoopback }, false},
		{"down", func(d *Descriptor) { d.Up = false }, false},
		{"static address", func(d *Descriptor) { d.DHCPEnabled = false }, false},
		{"no ipv4", func(d *Descriptor) { d.IPv4 = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := eth("eth0")
			tt.modify(&d)
			if got := d.Eligible(); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCandidates_PreservesOrder(t *testing.T) {
	wifi := eth("wlan0")
	wifi.LinkType = LinkWireless
	down := eth("eth1")
	down.Up = false

	inv := Static{eth("eth2"), wifi, down, eth("eth0")}

	got, err := Candidates(inv)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "eth2" || got[1].ID != "eth0" {
		t.Errorf("Candidates() = %v, want [eth2 eth0]", got)
	}
}

func TestCandidates_None(t *testing.T) {
	got, err := Candidates(Static{})
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Candidates() = %v, want empty", got)
	}
}

type failingInventory struct{ err error }

func (f failingInventory) Interfaces() ([]Descriptor, error) { return nil, f.err }

func TestCandidates_EnumerationError(t *testing.T) {
	want := errors.New("access denied")
	if _, err := Candidates(failingInventory{want}); !errors.Is(err, want) {
		t.Errorf("Candidates() error = %v, want %v", err, want)
	}
}

func TestOnly(t *testing.T) {
	named := eth("{4D36E972}")
	named.Name = "Ethernet 2"
	inv := Static{eth("eth0"), named, eth("eth1")}

	got, err := Only(inv, "eth1", "Ethernet 2").Interfaces()
	if err != nil {
		t.Fatalf("Interfaces() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "{4D36E972}" || got[1].ID != "eth1" {
		t.Errorf("Only() = %v, want [{4D36E972} eth1]", got)
	}

	if all, _ := Only(inv).Interfaces(); len(all) != 3 {
		t.Errorf("Only() with no names returned %d interfaces, want 3", len(all))
	}
}

func TestStatic_ReturnsCopy(t *testing.T) {
	inv := Static{eth("eth0")}
	got, _ := inv.Interfaces()
	got[0].ID = "changed"
	if inv[0].ID != "eth0" {
		t.Error("Interfaces() should not alias the static list")
	}
}

func TestLinkType_String(t *testing.T) {
	if LinkEthernet.String() != "ethernet" || LinkType(99).String() != "other" {
		t.Errorf("unexpected LinkType names: %s %s", LinkEthernet, LinkType(99))
	}
}
