package domain

import (
	"github.com/maksimkurb/ztproxy/src/internal/controller"
	"github.com/maksimkurb/ztproxy/src/internal/networking"
)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// This container provides a centralized place to manage dependencies and enables:
//   - Easy testing with mock implementations
//   - Configuration-driven dependency creation
//   - Explicit dependency management instead of global state
//
// Usage:
//
//	deps := domain.NewAppDependencies(domain.AppConfig{
//	    Controller: controller.Options{AuthToken: token},
//	})
//	client := deps.ControllerClient()
type AppDependencies struct {
	controllerClient ControllerClient
	routeLister      HostRouteLister
}

// AppConfig holds configuration for creating application dependencies.
type AppConfig struct {
	// Controller configures the controller API client. An empty BaseURL
	// selects http://127.0.0.1:9993.
	Controller controller.Options

	// HTTPClient overrides the HTTP client used for controller requests.
	HTTPClient controller.HTTPClient
}

// NewAppDependencies creates a new dependency container with production implementations.
//
// This factory method creates real implementations of all interfaces using the
// provided configuration. For testing, use NewTestDependencies or inject mocks directly.
func NewAppDependencies(cfg AppConfig) *AppDependencies {
	return &AppDependencies{
		controllerClient: controller.NewClient(cfg.Controller, cfg.HTTPClient),
		routeLister:      networking.NewNetlinkRouteLister(),
	}
}

// NewTestDependencies creates a dependency container with mock implementations.
//
// This is a convenience method for testing. Provide mock implementations for
// any dependencies you want to control in your tests.
func NewTestDependencies(controllerClient ControllerClient, routeLister HostRouteLister) *AppDependencies {
	return &AppDependencies{
		controllerClient: controllerClient,
		routeLister:      routeLister,
	}
}

// ControllerClient returns the controller API client.
func (d *AppDependencies) ControllerClient() ControllerClient {
	return d.controllerClient
}

// HostRouteLister returns the host route lister.
func (d *AppDependencies) HostRouteLister() HostRouteLister {
	return d.routeLister
}
