package network

import (
	"fmt"
	"net/netip"

	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
)

// InvalidPrefixLengthError is returned when a prefix length does not fit the
// address family of the network address.
type InvalidPrefixLengthError struct {
	Addr   netip.Addr
	Length int
}

func (e *InvalidPrefixLengthError) Error() string {
	if !e.Addr.IsValid() {
		return fmt.Sprintf("invalid prefix length %d: no network address", e.Length)
	}
	return fmt.Sprintf("invalid prefix length %d for %s (must be 0-%d)", e.Length, e.Addr, e.Addr.BitLen())
}

func (e *InvalidPrefixLengthError) Unwrap() error { return zterrors.ErrInvalidPrefixLength }

func (e *InvalidPrefixLengthError) ErrorCode() zterrors.ErrorCode {
	return zterrors.ErrCodeInvalidPrefixLength
}

// NoCarryingNetworkError is returned when a route's gateway is not inside any
// route target of the same network.
type NoCarryingNetworkError struct {
	RouteIndex int
	Gateway    netip.Addr
}

func (e *NoCarryingNetworkError) Error() string {
	return fmt.Sprintf("no carrying network for gateway %s of route %d", e.Gateway, e.RouteIndex)
}

func (e *NoCarryingNetworkError) Unwrap() error { return zterrors.ErrNoCarryingNetwork }

func (e *NoCarryingNetworkError) ErrorCode() zterrors.ErrorCode {
	return zterrors.ErrCodeNoCarryingNetwork
}
