package network

import "net/netip"

// NewPrefix builds the network prefix of addr with the given length. Host
// bits are cleared, so NewPrefix(10.10.10.10, 24) is 10.10.10.0/24. IPv4
// addresses in 4-in-6 form are treated as IPv4.
func NewPrefix(addr netip.Addr, bits int) (netip.Prefix, error) {
	addr = addr.Unmap()
	if !addr.IsValid() || bits < 0 || bits > addr.BitLen() {
		return netip.Prefix{}, &InvalidPrefixLengthError{Addr: addr, Length: bits}
	}
	// Prefix only fails for the cases rejected above.
	p, err := addr.Prefix(bits)
	if err != nil {
		return netip.Prefix{}, &InvalidPrefixLengthError{Addr: addr, Length: bits}
	}
	return p, nil
}
