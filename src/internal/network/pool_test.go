package network

import (
	"net/netip"
	"testing"
)

func TestPoolForPrefix(t *testing.T) {
	tests := []struct {
		prefix    string
		wantStart string
		wantEnd   string
	}{
		{"10.0.0.0/24", "10.0.0.1", "10.0.0.254"},
		{"10.10.0.0/16", "10.10.0.1", "10.10.255.254"},
		{"192.168.1.4/30", "192.168.1.5", "192.168.1.6"},
		{"192.168.1.4/31", "192.168.1.4", "192.168.1.5"},
		{"192.168.1.4/32", "192.168.1.4", "192.168.1.4"},
		{"fd00::/126", "fd00::", "fd00::3"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			pool, err := PoolForPrefix(netip.MustParsePrefix(tt.prefix))
			if err != nil {
				t.Fatalf("PoolForPrefix() error = %v", err)
			}
			if pool.Start.String() != tt.wantStart || pool.End.String() != tt.wantEnd {
				t.Errorf("PoolForPrefix() = %s, want %s-%s", pool, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestAddressRange(t *testing.T) {
	a := netip.MustParseAddr
	v4 := NewAddressRange(a("10.0.0.10"), a("10.0.0.20"))

	if !v4.SameFamily() || !v4.Ordered() {
		t.Error("expected ordered ipv4 range")
	}
	if got := v4.Size().Int64(); got != 11 {
		t.Errorf("Size() = %d, want 11", got)
	}
	if !v4.Contains(a("10.0.0.15")) || v4.Contains(a("10.0.0.21")) || v4.Contains(a("fd00::1")) {
		t.Error("Contains() mismatch")
	}
	if !v4.Within(netip.MustParsePrefix("10.0.0.0/24")) || v4.Within(netip.MustParsePrefix("10.0.0.16/28")) {
		t.Error("Within() mismatch")
	}
	if v4.String() != "10.0.0.10-10.0.0.20" {
		t.Errorf("String() = %s", v4)
	}

	reversed := NewAddressRange(a("10.0.0.20"), a("10.0.0.10"))
	if reversed.Ordered() || reversed.Size().Sign() != 0 {
		t.Error("expected reversed range to be unordered and empty")
	}

	mixed := NewAddressRange(a("10.0.0.1"), a("fd00::1"))
	if mixed.SameFamily() || mixed.Ordered() {
		t.Error("expected mixed range to be rejected")
	}

	mapped := NewAddressRange(a("::ffff:10.0.0.1"), a("10.0.0.5"))
	if !mapped.Start.Is4() || !mapped.Ordered() {
		t.Errorf("expected mapped start to be unmapped: %s", mapped)
	}

	v6 := NewAddressRange(a("fd00::"), a("fd00::ffff:ffff:ffff:ffff"))
	if v6.Size().String() != "18446744073709551616" {
		t.Errorf("Size() = %s", v6.Size())
	}
}
