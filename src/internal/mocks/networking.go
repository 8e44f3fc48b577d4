package mocks

import (
	"github.com/maksimkurb/ztproxy/src/internal/networking"
)

// MockHostRouteLister is a mock implementation of the HostRouteLister interface.
//
// This allows testing route conflict checks without netlink access.
type MockHostRouteLister struct {
	// Routes is returned by HostRoutes when HostRoutesFunc is nil
	Routes []networking.HostRoute

	// HostRoutesFunc is called by HostRoutes if not nil
	HostRoutesFunc func() ([]networking.HostRoute, error)

	HostRoutesCalls int
}

// HostRoutes returns the configured host routes.
func (m *MockHostRouteLister) HostRoutes() ([]networking.HostRoute, error) {
	m.HostRoutesCalls++
	if m.HostRoutesFunc != nil {
		return m.HostRoutesFunc()
	}
	return m.Routes, nil
}
