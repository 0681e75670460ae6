package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		info        debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name: "module version",
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			},
			wantVersion: "v0.3.0",
			wantCommit:  "0123456",
		},
		{
			name: "dirty tree",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc"},
					{Key: "vcs.modified", Value: "true"},
					{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
				},
			},
			wantVersion: "dev-20260301",
			wantCommit:  "abc-dirty",
		},
		{
			name: "no vcs",
			info: debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := fromBuildInfo(&tt.info)
			if v != tt.wantVersion || c != tt.wantCommit {
				t.Errorf("fromBuildInfo() = %q, %q, want %q, %q", v, c, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestFull(t *testing.T) {
	if !strings.Contains(Full(), "commit: ") {
		t.Errorf("Full() = %q", Full())
	}
	if Version == "" || Commit == "" {
		t.Error("init should always populate Version and Commit")
	}
}
