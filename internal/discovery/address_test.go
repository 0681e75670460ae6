package discovery

import (
	"bytes"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		value   []byte
		wantErr bool
	}{
		{"empty", []byte{}, true},
		{"nil", nil, true},
		{"three bytes", []byte{10, 0, 0}, true},
		{"four bytes", []byte{10, 0, 0, 4}, false},
		{"five bytes", []byte{10, 0, 0, 4, 1}, true},
		{"sixteen bytes", make([]byte, 16), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.value)
			if tt.wantErr {
				if !IsMalformed(err) {
					t.Errorf("ParseAddress(%v) error = %v, want malformed", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddress() error = %v", err)
			}
			if !bytes.Equal(addr.Bytes(), tt.value) {
				t.Errorf("Bytes() = %v, want %v", addr.Bytes(), tt.value)
			}
		})
	}
}

func TestAddress_String(t *testing.T) {
	if got := (Address{168, 63, 129, 16}).String(); got != "168.63.129.16" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewEndpoint(t *testing.T) {
	ep := NewEndpoint(Address{10, 0, 0, 4})
	want := "http://10.0.0.4:8080/metadata/latest/scheduledevents"
	if got := ep.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if again := NewEndpoint(Address{10, 0, 0, 4}); again.String() != ep.String() {
		t.Error("NewEndpoint is not deterministic")
	}
	if ep.URL.Port() != "8080" || ep.URL.Hostname() != "10.0.0.4" {
		t.Errorf("URL host = %s", ep.URL.Host)
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Type: ErrTypeTimeout, InterfaceID: "eth0", Message: "no DHCP response"}
	if got := err.Error(); got != "Timeout error: interface eth0: no DHCP response" {
		t.Errorf("Error() = %q", got)
	}
}
