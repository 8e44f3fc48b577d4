package network

import "net/netip"

// Route is a target network reachable either directly (Via == nil) or
// through a gateway that must lie inside some other route target of the same
// network.
type Route struct {
	Target netip.Prefix `json:"target"`
	Via    *netip.Addr  `json:"via"`
	Flags  uint16       `json:"flags"`
	Metric uint16       `json:"metric"`
}

// NewRoute returns a route to target, through via when it is non-nil.
func NewRoute(target netip.Prefix, via *netip.Addr) Route {
	r := Route{}
	r.SetTarget(target, via)
	return r
}

// SetTarget replaces the route's target and gateway.
func (r *Route) SetTarget(target netip.Prefix, via *netip.Addr) {
	r.Target = target
	if via == nil {
		r.Via = nil
		return
	}
	gw := via.Unmap()
	r.Via = &gw
}

// SetFlags sets the route flags.
func (r *Route) SetFlags(f uint16) {
	r.Flags = f
}

// SetMetric sets the route metric.
func (r *Route) SetMetric(m uint16) {
	r.Metric = m
}

// IsDirect reports whether the route has no gateway.
func (r Route) IsDirect() bool {
	return r.Via == nil
}

func (r Route) clone() Route {
	if r.Via != nil {
		gw := *r.Via
		r.Via = &gw
	}
	return r
}
