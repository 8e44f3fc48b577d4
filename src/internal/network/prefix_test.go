package network

import (
	"errors"
	"net/netip"
	"testing"

	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
)

func TestNewPrefix(t *testing.T) {
	tests := []struct {
		name string
		addr string
		bits int
		want string
	}{
		{"host bits cleared", "10.10.10.10", 24, "10.10.10.0/24"},
		{"full ipv4 length", "10.10.10.10", 32, "10.10.10.10/32"},
		{"zero length", "192.168.1.1", 0, "0.0.0.0/0"},
		{"ipv6", "fd00:1234::1", 64, "fd00:1234::/64"},
		{"full ipv6 length", "fd00::1", 128, "fd00::1/128"},
		{"4-in-6 is unmapped", "::ffff:10.1.2.3", 8, "10.0.0.0/8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPrefix(netip.MustParseAddr(tt.addr), tt.bits)
			if err != nil {
				t.Fatalf("NewPrefix() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("NewPrefix() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewPrefix_InvalidLength(t *testing.T) {
	tests := []struct {
		name string
		addr netip.Addr
		bits int
	}{
		{"ipv4 too long", netip.MustParseAddr("10.0.0.1"), 33},
		{"ipv6 too long", netip.MustParseAddr("fd00::1"), 129},
		{"negative", netip.MustParseAddr("10.0.0.1"), -1},
		{"no address", netip.Addr{}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPrefix(tt.addr, tt.bits)
			if err == nil {
				t.Fatal("expected error")
			}

			var lenErr *InvalidPrefixLengthError
			if !errors.As(err, &lenErr) {
				t.Fatalf("expected *InvalidPrefixLengthError, got %T", err)
			}
			if lenErr.Length != tt.bits {
				t.Errorf("Length = %d, want %d", lenErr.Length, tt.bits)
			}
			if !errors.Is(err, zterrors.ErrInvalidPrefixLength) {
				t.Error("expected errors.Is(err, ErrInvalidPrefixLength)")
			}
			if code := zterrors.CodeOf(err); code != zterrors.ErrCodeInvalidPrefixLength {
				t.Errorf("CodeOf() = %s", code)
			}
		})
	}
}

// Every valid length yields a prefix of that length whose address is the
// masked input, and which parses back from its string form.
func TestNewPrefix_AllLengths(t *testing.T) {
	for _, s := range []string{"203.0.113.77", "2001:db8:abcd:12::1", "::ffff:198.51.100.9"} {
		addr := netip.MustParseAddr(s).Unmap()
		for bits := 0; bits <= addr.BitLen(); bits++ {
			p, err := NewPrefix(addr, bits)
			if err != nil {
				t.Fatalf("NewPrefix(%s, %d) error = %v", s, bits, err)
			}
			if p.Bits() != bits {
				t.Errorf("NewPrefix(%s, %d).Bits() = %d", s, bits, p.Bits())
			}
			if p.Masked() != p {
				t.Errorf("NewPrefix(%s, %d) = %s is not masked", s, bits, p)
			}
			if !p.Contains(addr) {
				t.Errorf("NewPrefix(%s, %d) = %s does not contain the input", s, bits, p)
			}
			parsed, err := netip.ParsePrefix(p.String())
			if err != nil {
				t.Fatalf("ParsePrefix(%q) error = %v", p.String(), err)
			}
			if parsed != p {
				t.Errorf("ParsePrefix(%q) = %s, want %s", p.String(), parsed, p)
			}
		}
	}
}
