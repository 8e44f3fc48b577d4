package utils

import (
	"path/filepath"
	"testing"
)

func TestGetAbsolutePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		baseDir string
		want    string
	}{
		{"absolute path kept", "/var/lib/zerotier-one/authtoken.secret", "/etc/ztproxy", "/var/lib/zerotier-one/authtoken.secret"},
		{"relative joined", "authtoken.secret", "/etc/ztproxy", "/etc/ztproxy/authtoken.secret"},
		{"dot path", "./token", "/etc/ztproxy", "/etc/ztproxy/token"},
		{"parent path", "../token", "/etc/ztproxy", "/etc/token"},
		{"cleaned", "a//b/../token", "/base//dir", "/base/dir/a/token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAbsolutePath(tt.path, tt.baseDir); got != tt.want {
				t.Errorf("GetAbsolutePath(%q, %q) = %q, want %q", tt.path, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		path string
		want string
	}{
		{"~/.zeroTierOneAuthToken", filepath.Join(home, ".zeroTierOneAuthToken")},
		{"~", home},
		{"/etc/ztproxy/ztproxy.toml", "/etc/ztproxy/ztproxy.toml"},
		{"~other/file", "~other/file"},
		{"relative/~/file", "relative/~/file"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ExpandHome(tt.path); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
