package network

import (
	"fmt"
	"math/big"
	"net/netip"

	"github.com/apparentlymart/go-cidr/cidr"
	"github.com/maksimkurb/ztproxy/src/internal/utils"
)

// AddressRange is an assignment pool: a contiguous span of addresses the
// controller may hand out to members.
//
// Neither the family match of Start and End nor Start <= End is enforced
// here; Network.Validate reports both.
type AddressRange struct {
	Start netip.Addr `json:"ipRangeStart"`
	End   netip.Addr `json:"ipRangeEnd"`
}

// NewAddressRange returns the range [start, end].
func NewAddressRange(start, end netip.Addr) AddressRange {
	r := AddressRange{}
	r.SetRange(start, end)
	return r
}

// SetRange replaces both ends of the range.
func (r *AddressRange) SetRange(start, end netip.Addr) {
	r.Start = start.Unmap()
	r.End = end.Unmap()
}

// SameFamily reports whether both ends are valid addresses of one family.
func (r AddressRange) SameFamily() bool {
	return r.Start.IsValid() && r.End.IsValid() && r.Start.Is4() == r.End.Is4()
}

// Ordered reports whether Start <= End. Ranges mixing families are never
// ordered.
func (r AddressRange) Ordered() bool {
	return r.SameFamily() && r.Start.Compare(r.End) <= 0
}

// Contains reports whether addr lies inside the range.
func (r AddressRange) Contains(addr netip.Addr) bool {
	addr = addr.Unmap()
	return r.Ordered() && addr.Is4() == r.Start.Is4() &&
		r.Start.Compare(addr) <= 0 && addr.Compare(r.End) <= 0
}

// Within reports whether the whole range lies inside p.
func (r AddressRange) Within(p netip.Prefix) bool {
	return r.Ordered() && p.Contains(r.Start) && p.Contains(r.End)
}

// Size returns the number of addresses in the range, or 0 for a range that
// is not ordered.
func (r AddressRange) Size() *big.Int {
	if !r.Ordered() {
		return big.NewInt(0)
	}
	start := new(big.Int).SetBytes(r.Start.AsSlice())
	end := new(big.Int).SetBytes(r.End.AsSlice())
	return end.Sub(end, start).Add(end, big.NewInt(1))
}

func (r AddressRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// PoolForPrefix returns the usable host range of p. For IPv4 prefixes with
// more than two addresses the network and broadcast addresses are excluded.
func PoolForPrefix(p netip.Prefix) (AddressRange, error) {
	ipNet, err := utils.PrefixToIPNet(p)
	if err != nil {
		return AddressRange{}, err
	}

	first, last := cidr.AddressRange(ipNet)
	if p.Addr().Is4() && cidr.AddressCount(ipNet) > 2 {
		first = cidr.Inc(first)
		last = cidr.Dec(last)
	}

	start, err := utils.IPToAddr(first)
	if err != nil {
		return AddressRange{}, err
	}
	end, err := utils.IPToAddr(last)
	if err != nil {
		return AddressRange{}, err
	}
	return NewAddressRange(start, end), nil
}
