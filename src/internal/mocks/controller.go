// Package mocks provides mock implementations for testing.
//
// This package should ONLY be imported in test files (_test.go).
// The Go toolchain will automatically exclude this package from production builds
// since it's not imported in any production code.
package mocks

import (
	"context"

	"github.com/maksimkurb/ztproxy/src/internal/controller"
	"github.com/maksimkurb/ztproxy/src/internal/network"
)

// Identifiers returned by the default mock behavior.
const (
	DefaultNodeAddress = "8056c2e21c"
	DefaultNetworkID   = "8056c2e21c000001"
)

// MockControllerClient is a mock implementation of the ControllerClient interface.
//
// It allows tests to provide custom behavior for each method through function fields.
// If a function field is nil, a sensible default implementation is used. The
// defaults validate networks like the real client does, so invalid
// configurations still fail.
//
// Example usage:
//
//	mock := &MockControllerClient{
//	    FetchFunc: func(ctx context.Context, nwid string) (*network.Network, error) {
//	        return network.Default(), nil
//	    },
//	}
//	n, err := mock.Fetch(ctx, "8056c2e21c000001")
type MockControllerClient struct {
	StatusFunc       func(ctx context.Context) (*controller.NodeStatus, error)
	ListNetworksFunc func(ctx context.Context) ([]string, error)
	CreateFunc       func(ctx context.Context, n *network.Network) (*network.Network, error)
	FetchFunc        func(ctx context.Context, nwid string) (*network.Network, error)
	UpdateFunc       func(ctx context.Context, n *network.Network) (*network.Network, error)
	DeleteFunc       func(ctx context.Context, nwid string) error
	ListMembersFunc  func(ctx context.Context, nwid string) (map[string]uint64, error)
	GetMemberFunc    func(ctx context.Context, nwid, memberID string) (*controller.Member, error)
	AuthorizeFunc    func(ctx context.Context, nwid, memberID string) (*controller.Member, error)
	DeauthorizeFunc  func(ctx context.Context, nwid, memberID string) (*controller.Member, error)

	// Track calls for verification in tests
	CreateCalls    int
	UpdateCalls    int
	DeleteCalls    int
	AuthorizeCalls int

	// Last networks passed to Create and Update
	LastCreated *network.Network
	LastUpdated *network.Network
}

// NewMockControllerClient creates a new mock client with default behavior.
func NewMockControllerClient() *MockControllerClient {
	return &MockControllerClient{}
}

// Status returns the node status. Default: an online node with DefaultNodeAddress.
func (m *MockControllerClient) Status(ctx context.Context) (*controller.NodeStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return &controller.NodeStatus{Address: DefaultNodeAddress, Online: true, Version: "1.14.0"}, nil
}

// ListNetworks returns network ids. Default: DefaultNetworkID only.
func (m *MockControllerClient) ListNetworks(ctx context.Context) ([]string, error) {
	if m.ListNetworksFunc != nil {
		return m.ListNetworksFunc(ctx)
	}
	return []string{DefaultNetworkID}, nil
}

// Create validates n and returns a copy carrying DefaultNetworkID.
func (m *MockControllerClient) Create(ctx context.Context, n *network.Network) (*network.Network, error) {
	m.CreateCalls++
	m.LastCreated = n.Clone()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	created := n.Clone()
	id := DefaultNetworkID
	created.ID = &id
	created.SetNetworkID(id)
	return created, nil
}

// Fetch returns a network. Default: Default() carrying nwid.
func (m *MockControllerClient) Fetch(ctx context.Context, nwid string) (*network.Network, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, nwid)
	}
	n := network.Default()
	n.ID = &nwid
	n.SetNetworkID(nwid)
	return n, nil
}

// Update validates n and returns a copy of it.
func (m *MockControllerClient) Update(ctx context.Context, n *network.Network) (*network.Network, error) {
	m.UpdateCalls++
	m.LastUpdated = n.Clone()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, n)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// Delete removes a network. Default: succeeds.
func (m *MockControllerClient) Delete(ctx context.Context, nwid string) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, nwid)
	}
	return nil
}

// ListMembers returns member ids. Default: empty.
func (m *MockControllerClient) ListMembers(ctx context.Context, nwid string) (map[string]uint64, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, nwid)
	}
	return map[string]uint64{}, nil
}

// GetMember returns a member. Default: an unauthorized member.
func (m *MockControllerClient) GetMember(ctx context.Context, nwid, memberID string) (*controller.Member, error) {
	if m.GetMemberFunc != nil {
		return m.GetMemberFunc(ctx, nwid, memberID)
	}
	return &controller.Member{ID: memberID, Address: memberID, NWID: nwid}, nil
}

// Authorize authorizes a member. Default: returns the member authorized.
func (m *MockControllerClient) Authorize(ctx context.Context, nwid, memberID string) (*controller.Member, error) {
	m.AuthorizeCalls++
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx, nwid, memberID)
	}
	return &controller.Member{ID: memberID, Address: memberID, NWID: nwid, Authorized: true}, nil
}

// Deauthorize revokes a member. Default: returns the member unauthorized.
func (m *MockControllerClient) Deauthorize(ctx context.Context, nwid, memberID string) (*controller.Member, error) {
	if m.DeauthorizeFunc != nil {
		return m.DeauthorizeFunc(ctx, nwid, memberID)
	}
	return &controller.Member{ID: memberID, Address: memberID, NWID: nwid}, nil
}
