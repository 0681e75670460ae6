package dhcp

import (
	"bytes"
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestFillParam(t *testing.T) {
	tests := []struct {
		name       string
		value      []byte
		present    bool
		bufLen     int
		wantStatus uint32
		wantData   []byte
		wantNil    bool
		wantSize   uint32
	}{
		{
			name:       "absent option",
			present:    false,
			bufLen:     16,
			wantStatus: StatusSuccess,
			wantNil:    true,
			wantSize:   16,
		},
		{
			name:       "four bytes",
			value:      []byte{10, 0, 0, 4},
			present:    true,
			bufLen:     16,
			wantStatus: StatusSuccess,
			wantData:   []byte{10, 0, 0, 4},
			wantSize:   16,
		},
		{
			name:       "present but empty",
			value:      nil,
			present:    true,
			bufLen:     16,
			wantStatus: StatusSuccess,
			wantData:   []byte{},
			wantSize:   16,
		},
		{
			name:       "buffer too small",
			value:      bytes.Repeat([]byte{1}, 20),
			present:    true,
			bufLen:     16,
			wantStatus: StatusMoreData,
			wantNil:    true,
			wantSize:   20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.bufLen)
			size := uint32(tt.bufLen)
			recv := &Param{}

			status := fillParam(tt.value, tt.present, recv, buf, &size)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if size != tt.wantSize {
				t.Errorf("size = %d, want %d", size, tt.wantSize)
			}
			if tt.wantNil {
				if recv.Data != nil {
					t.Errorf("Data = %v, want nil", recv.Data)
				}
				return
			}
			if recv.Data == nil {
				t.Fatal("Data = nil, want non-nil")
			}
			if !bytes.Equal(recv.Data, tt.wantData) {
				t.Errorf("Data = %v, want %v", recv.Data, tt.wantData)
			}
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want uint32
	}{
		{"EPERM", fmt.Errorf("open: %w", syscall.EPERM), StatusAccessDenied},
		{"EACCES", fmt.Errorf("open: %w", syscall.EACCES), StatusAccessDenied},
		{"ENOENT is not absence", fmt.Errorf("open: %w", syscall.ENOENT), statusGenFailure},
		{"timeout", timeoutErr{}, statusTimeout},
		{"generic", errors.New("boom"), statusGenFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFromError(tt.err); got != tt.want {
				t.Errorf("statusFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestSharedSession_RefCount(t *testing.T) {
	opens, closes := 0, 0
	s := &sharedSession{
		open:  func() (uint32, error) { opens++; return 2, nil },
		close: func() error { closes++; return nil },
	}

	for i := 0; i < 2; i++ {
		version, err := s.acquire()
		if err != nil || version != 2 {
			t.Fatalf("acquire() = %d, %v, want 2, nil", version, err)
		}
	}
	if opens != 1 {
		t.Errorf("opens = %d, want 1 for overlapping sessions", opens)
	}

	_ = s.release()
	if closes != 0 {
		t.Error("released the platform session while another holder remains")
	}
	_ = s.release()
	if closes != 1 {
		t.Errorf("closes = %d, want 1 after the last release", closes)
	}

	// extra release is harmless
	_ = s.release()
	if closes != 1 || s.refs != 0 {
		t.Errorf("closes=%d refs=%d after extra release", closes, s.refs)
	}

	// reopens after a full release
	_, _ = s.acquire()
	if opens != 2 {
		t.Errorf("opens = %d, want 2", opens)
	}
}

func TestSharedSession_OpenFailure(t *testing.T) {
	denied := errors.New("denied")
	s := &sharedSession{
		open:  func() (uint32, error) { return 0, denied },
		close: func() error { t.Error("close called without a successful open"); return nil },
	}

	if _, err := s.acquire(); !errors.Is(err, denied) {
		t.Fatalf("acquire() error = %v, want %v", err, denied)
	}
	if s.refs != 0 {
		t.Errorf("refs = %d after failed open, want 0", s.refs)
	}
	_ = s.release()
}
