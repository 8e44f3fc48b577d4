package utils

import (
	"net"
	"net/netip"
	"testing"
)

func TestPrefixToIPNet(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
		ipLen    int
	}{
		{"IPv4 network", "10.10.10.0/24", "10.10.10.0/24", net.IPv4len},
		{"IPv4 host bits masked", "10.10.10.10/24", "10.10.10.0/24", net.IPv4len},
		{"IPv6 network", "fdab:1234::/64", "fdab:1234::/64", net.IPv6len},
		{"IPv4 host route", "203.0.113.1/32", "203.0.113.1/32", net.IPv4len},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ipNet, err := PrefixToIPNet(netip.MustParsePrefix(tt.prefix))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ipNet.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, ipNet.String())
			}
			if len(ipNet.IP) != tt.ipLen {
				t.Errorf("Expected IP length %d, got %d", tt.ipLen, len(ipNet.IP))
			}
		})
	}
}

func TestPrefixToIPNet_Invalid(t *testing.T) {
	if _, err := PrefixToIPNet(netip.Prefix{}); err == nil {
		t.Error("Expected error for zero prefix")
	}
}

func TestIPNetToPrefix(t *testing.T) {
	tests := []struct {
		name     string
		ipNet    *net.IPNet
		expected string
	}{
		{
			name:     "IPv4 with 4-byte mask",
			ipNet:    &net.IPNet{IP: net.IPv4(172, 16, 1, 0).To4(), Mask: net.CIDRMask(24, 32)},
			expected: "172.16.1.0/24",
		},
		{
			name:     "IPv4 with 16-byte mask",
			ipNet:    &net.IPNet{IP: net.IPv4(172, 16, 1, 7), Mask: net.CIDRMask(120, 128)},
			expected: "172.16.1.0/24",
		},
		{
			name:     "IPv6",
			ipNet:    &net.IPNet{IP: net.ParseIP("fdab:1234::1"), Mask: net.CIDRMask(64, 128)},
			expected: "fdab:1234::/64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := IPNetToPrefix(tt.ipNet)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if p.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, p.String())
			}
		})
	}
}

func TestIPNetToPrefix_Invalid(t *testing.T) {
	if _, err := IPNetToPrefix(nil); err == nil {
		t.Error("Expected error for nil network")
	}
	bad := &net.IPNet{IP: net.IP{1, 2, 3}, Mask: net.CIDRMask(24, 32)}
	if _, err := IPNetToPrefix(bad); err == nil {
		t.Error("Expected error for malformed IP")
	}
}

func TestAddrRoundTrip(t *testing.T) {
	for _, s := range []string{"10.0.0.254", "::ffff:10.0.0.254", "fdab:1234::1:1"} {
		t.Run(s, func(t *testing.T) {
			addr := netip.MustParseAddr(s)
			back, err := IPToAddr(AddrToIP(addr))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if back != addr.Unmap() {
				t.Errorf("Expected %s, got %s", addr.Unmap(), back)
			}
		})
	}

	if AddrToIP(netip.Addr{}) != nil {
		t.Error("Expected nil IP for zero address")
	}
}
