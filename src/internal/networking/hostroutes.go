package networking

import (
	"fmt"
	"net/netip"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/maksimkurb/ztproxy/src/internal/log"
	"github.com/maksimkurb/ztproxy/src/internal/utils"
)

// HostRoute is a unicast route of the host's main routing table.
type HostRoute struct {
	Dst       netip.Prefix
	Gateway   netip.Addr
	LinkIndex int
	LinkName  string
	Metric    int
}

func (r HostRoute) String() string {
	via := ""
	if r.Gateway.IsValid() {
		via = " via " + r.Gateway.String()
	}

	linkName := r.LinkName
	if linkName == "" {
		linkName = "<nil>"
	}

	return fmt.Sprintf("%s%s dev %s (idx=%d) [metric:%d]", r.Dst, via, linkName, r.LinkIndex, r.Metric)
}

// NetlinkRouteLister reads host routes through netlink.
type NetlinkRouteLister struct{}

// NewNetlinkRouteLister creates a route lister for the running host.
func NewNetlinkRouteLister() *NetlinkRouteLister {
	return &NetlinkRouteLister{}
}

// HostRoutes lists the unicast routes of the main table, both families.
// Default routes are skipped: every overlay route overlaps them.
func (l *NetlinkRouteLister) HostRoutes() ([]HostRoute, error) {
	filter := &netlink.Route{
		Table: unix.RT_TABLE_MAIN,
		Type:  unix.RTN_UNICAST,
	}
	routes, err := netlink.RouteListFiltered(netlink.FAMILY_ALL, filter, netlink.RT_FILTER_TABLE|netlink.RT_FILTER_TYPE)
	if err != nil {
		return nil, fmt.Errorf("failed to list host routes: %w", err)
	}

	linkNames := make(map[int]string)
	var result []HostRoute
	for _, route := range routes {
		if route.Dst == nil {
			continue
		}
		dst, err := utils.IPNetToPrefix(route.Dst)
		if err != nil {
			log.Debugf("Skipping host route with unsupported destination %v: %v", route.Dst, err)
			continue
		}
		if dst.Bits() == 0 {
			continue
		}

		hr := HostRoute{
			Dst:       dst,
			LinkIndex: route.LinkIndex,
			Metric:    route.Priority,
		}
		if route.Gw != nil {
			if gw, err := utils.IPToAddr(route.Gw); err == nil {
				hr.Gateway = gw
			}
		}
		if route.LinkIndex > 0 {
			name, ok := linkNames[route.LinkIndex]
			if !ok {
				if link, err := netlink.LinkByIndex(route.LinkIndex); err != nil {
					log.Debugf("Failed to resolve link %d: %v", route.LinkIndex, err)
				} else {
					name = link.Attrs().Name
				}
				linkNames[route.LinkIndex] = name
			}
			hr.LinkName = name
		}

		result = append(result, hr)
	}

	log.Debugf("Found %d host routes in the main table", len(result))
	return result, nil
}
