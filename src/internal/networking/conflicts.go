package networking

import (
	"fmt"

	"github.com/maksimkurb/ztproxy/src/internal/network"
)

// Conflict is an overlay route whose target overlaps a host route. Members
// that install the overlay route would shadow (or be shadowed by) the host
// route.
type Conflict struct {
	RouteIndex int
	Route      network.Route
	Host       HostRoute
}

func (c Conflict) String() string {
	return fmt.Sprintf("route %d (%s) overlaps host route %s", c.RouteIndex, c.Route.Target, c.Host)
}

// FindConflicts returns every pair of overlay route and host route with
// overlapping prefixes, in route order. Routes without a valid target are
// ignored.
func FindConflicts(routes []network.Route, host []HostRoute) []Conflict {
	var conflicts []Conflict
	for i, r := range routes {
		if !r.Target.IsValid() {
			continue
		}
		for _, h := range host {
			if h.Dst.IsValid() && r.Target.Overlaps(h.Dst) {
				conflicts = append(conflicts, Conflict{RouteIndex: i, Route: r, Host: h})
			}
		}
	}
	return conflicts
}
