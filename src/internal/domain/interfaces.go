// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the fundamental interfaces that enable loose coupling between
// components and facilitate testing through dependency injection.
package domain

import (
	"context"

	"github.com/maksimkurb/ztproxy/src/internal/controller"
	"github.com/maksimkurb/ztproxy/src/internal/network"
	"github.com/maksimkurb/ztproxy/src/internal/networking"
)

// ControllerClient defines the interface for interacting with the controller management API.
//
// This interface abstracts the controller API client, allowing for easy mocking in tests.
type ControllerClient interface {
	// Status retrieves the controller node status.
	Status(ctx context.Context) (*controller.NodeStatus, error)

	// ListNetworks returns the ids of all networks hosted by the controller.
	ListNetworks(ctx context.Context) ([]string, error)

	// Create validates and submits a new network, returning it as stored.
	Create(ctx context.Context, n *network.Network) (*network.Network, error)

	// Fetch retrieves a network by id.
	Fetch(ctx context.Context, nwid string) (*network.Network, error)

	// Update validates and replaces the configuration of an existing network.
	Update(ctx context.Context, n *network.Network) (*network.Network, error)

	// Delete removes a network.
	Delete(ctx context.Context, nwid string) error

	// ListMembers returns the member ids of a network mapped to their revision.
	ListMembers(ctx context.Context, nwid string) (map[string]uint64, error)

	// GetMember retrieves one member of a network.
	GetMember(ctx context.Context, nwid, memberID string) (*controller.Member, error)

	// Authorize allows a member onto a private network.
	Authorize(ctx context.Context, nwid, memberID string) (*controller.Member, error)

	// Deauthorize revokes a member's access.
	Deauthorize(ctx context.Context, nwid, memberID string) (*controller.Member, error)
}

// HostRouteLister defines the interface for reading the host routing table.
//
// This allows conflict checks to run in tests without netlink access.
type HostRouteLister interface {
	// HostRoutes lists the unicast routes of the host's main table.
	HostRoutes() ([]networking.HostRoute, error)
}
