package network

import "net/netip"

// Defaults used by Default. An unconfigured network lives on the IPv4
// link-local block.
var (
	DefaultName            = "tfnet"
	DefaultLinkLocalPrefix = netip.MustParsePrefix("169.254.0.0/16")
	DefaultPoolStart       = netip.MustParseAddr("169.254.0.10")
	DefaultPoolEnd         = netip.MustParseAddr("169.254.0.100")
	DefaultV4AssignMode    = AssignModeZT
	DefaultV6AssignMode    = AssignModeNone
)

// Default returns a private network on the link-local block: one pool
// 169.254.0.10-169.254.0.100, one direct route 169.254.0.0/16, one accept
// rule, zt/none assign modes, no capabilities or tags and no id.
func Default() *Network {
	name := DefaultName
	return &Network{
		Name:              &name,
		Private:           true,
		V4AssignMode:      DefaultV4AssignMode,
		V6AssignMode:      DefaultV6AssignMode,
		Routes:            []Route{NewRoute(DefaultLinkLocalPrefix, nil)},
		IPAssignmentPools: []AddressRange{NewAddressRange(DefaultPoolStart, DefaultPoolEnd)},
		Rules:             DefaultRules(),
	}
}

// With builds a network from explicit inputs on top of Default: the primary
// route targets the prefix of start with the given mask, the single pool is
// [start, end], and existingID, when given, is attached as the nwid of an
// already created network.
func With(name *string, private bool, start, end netip.Addr, mask int, existingID *string) (*Network, error) {
	subnet, err := NewPrefix(start, mask)
	if err != nil {
		return nil, err
	}

	n := Default()
	n.Name = cloneString(name)
	n.Private = private
	n.Routes = []Route{NewRoute(subnet, nil)}
	n.IPAssignmentPools = []AddressRange{NewAddressRange(start, end)}
	if existingID != nil {
		n.SetNetworkID(*existingID)
	}
	return n, nil
}

// Option configures a network built by New.
type Option func(*Network)

// New returns Default() with opts applied in order.
func New(opts ...Option) *Network {
	n := Default()
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// WithName sets the network name.
func WithName(name string) Option {
	return func(n *Network) { n.Name = &name }
}

// WithPrivate sets whether members need authorization.
func WithPrivate(private bool) Option {
	return func(n *Network) { n.Private = private }
}

// WithPassiveBridging sets allowPassiveBridging.
func WithPassiveBridging(allow bool) Option {
	return func(n *Network) { n.AllowPassiveBridging = allow }
}

// WithAssignModes sets the per-family assignment modes.
func WithAssignModes(v4, v6 AssignMode) Option {
	return func(n *Network) {
		n.V4AssignMode = v4
		n.V6AssignMode = v6
	}
}

// WithSubnet replaces the routes and pools with a single direct subnet and
// its pool.
func WithSubnet(target netip.Prefix, pool AddressRange) Option {
	return func(n *Network) {
		n.Routes = []Route{NewRoute(target, nil)}
		n.IPAssignmentPools = []AddressRange{pool}
	}
}

// WithRoute appends a route.
func WithRoute(r Route) Option {
	return func(n *Network) { n.AppendRoute(r) }
}

// WithRules replaces the rule set.
func WithRules(rules ...Rule) Option {
	return func(n *Network) { n.Rules = append([]Rule{}, rules...) }
}

// WithCapabilities sets the capabilities list (present, possibly empty).
func WithCapabilities(rules ...Rule) Option {
	return func(n *Network) { n.Capabilities = RulesOf(rules...) }
}

// WithTags sets the tags list (present, possibly empty).
func WithTags(rules ...Rule) Option {
	return func(n *Network) { n.Tags = RulesOf(rules...) }
}

// WithMTU sets the network MTU.
func WithMTU(mtu int) Option {
	return func(n *Network) { n.MTU = mtu }
}

// WithDNS sets the resolver pushed to members.
func WithDNS(domain string, servers ...netip.Addr) Option {
	return func(n *Network) {
		n.DNS = &DNS{Domain: domain, Servers: append([]netip.Addr{}, servers...)}
	}
}
