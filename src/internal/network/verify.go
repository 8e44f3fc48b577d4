package network

import "net/netip"

// VerifyRoutes checks that every route with a gateway has a carrying
// network: some route target in the same network (the route itself
// included) that contains the gateway. Direct routes always pass, and a
// network without routes is valid.
//
// The first route without a carrier is reported as *NoCarryingNetworkError.
func (n *Network) VerifyRoutes() error {
	if idx := n.uncarriedRoutes(); len(idx) > 0 {
		return &NoCarryingNetworkError{RouteIndex: idx[0], Gateway: *n.Routes[idx[0]].Via}
	}
	return nil
}

// uncarriedRoutes returns the indexes of all gateway routes without a
// carrying network, in route order.
func (n *Network) uncarriedRoutes() []int {
	var missing []int
	for i, r := range n.Routes {
		if r.IsDirect() {
			continue
		}
		if !n.carries(r.Via.Unmap()) {
			missing = append(missing, i)
		}
	}
	return missing
}

func (n *Network) carries(gw netip.Addr) bool {
	for _, candidate := range n.Routes {
		if candidate.Target.IsValid() && candidate.Target.Contains(gw) {
			return true
		}
	}
	return false
}
