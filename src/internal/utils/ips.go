package utils

import (
	"fmt"
	"net"
	"net/netip"
)

// PrefixToIPNet converts a netip.Prefix into the *net.IPNet form expected by
// go-cidr and netlink. IPv4 prefixes use 4-byte addresses.
func PrefixToIPNet(p netip.Prefix) (*net.IPNet, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid prefix: %s", p)
	}
	p = p.Masked()
	return &net.IPNet{
		IP:   AddrToIP(p.Addr()),
		Mask: net.CIDRMask(p.Bits(), p.Addr().BitLen()),
	}, nil
}

// IPNetToPrefix converts a *net.IPNet into a masked netip.Prefix.
func IPNetToPrefix(n *net.IPNet) (netip.Prefix, error) {
	if n == nil {
		return netip.Prefix{}, fmt.Errorf("nil network")
	}
	addr, err := IPToAddr(n.IP)
	if err != nil {
		return netip.Prefix{}, err
	}
	ones, bits := n.Mask.Size()
	if bits == 0 {
		return netip.Prefix{}, fmt.Errorf("non-canonical mask: %s", n.Mask)
	}
	if bits == 128 && addr.Is4() && ones >= 96 {
		ones, bits = ones-96, 32
	}
	if bits != addr.BitLen() {
		return netip.Prefix{}, fmt.Errorf("mask size %d does not match address %s", bits, addr)
	}
	return netip.PrefixFrom(addr, ones).Masked(), nil
}

// AddrToIP converts a netip.Addr into a net.IP of its natural length.
func AddrToIP(a netip.Addr) net.IP {
	if !a.IsValid() {
		return nil
	}
	a = a.Unmap()
	if a.Is4() {
		b := a.As4()
		return net.IP(b[:])
	}
	b := a.As16()
	return net.IP(b[:])
}

// IPToAddr converts a net.IP into a netip.Addr, unmapping 4-in-6 forms.
func IPToAddr(ip net.IP) (netip.Addr, error) {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}, fmt.Errorf("invalid IP address: %v", ip)
	}
	return addr.Unmap(), nil
}
