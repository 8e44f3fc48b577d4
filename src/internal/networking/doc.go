// Package networking inspects the host routing table for the local check
// command.
//
// HostRoutes reads unicast routes of the main table through netlink, and
// FindConflicts reports which overlay routes of a network overlap them. A
// member that installs an overlapping overlay route can shadow the host's own
// route, so check prints every overlap as a warning. Nothing here changes
// host state.
//
// # Example Usage
//
//	host, err := networking.NewNetlinkRouteLister().HostRoutes()
//	if err != nil {
//	    return err
//	}
//	for _, c := range networking.FindConflicts(n.Routes, host) {
//	    log.Warnf("%s", c)
//	}
package networking
