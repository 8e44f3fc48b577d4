// Package utils provides small helpers shared across ztproxy.
//
//   - IP utilities: conversions between net/netip values and the net.IP /
//     *net.IPNet forms used by go-cidr and netlink
//   - Path utilities: relative path resolution and "~" expansion
//   - File utilities: closing with a logged warning
//
// Converting a prefix for go-cidr:
//
//	ipNet, err := utils.PrefixToIPNet(netip.MustParsePrefix("10.10.10.0/24"))
//	if err != nil {
//	    return err
//	}
//	first, last := cidr.AddressRange(ipNet)
package utils
