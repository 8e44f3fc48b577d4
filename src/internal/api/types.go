package api

import (
	"github.com/maksimkurb/ztproxy/src/internal/controller"
	"github.com/maksimkurb/ztproxy/src/internal/network"
)

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// VersionInfo contains build version information.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NetworksResponse lists the network ids hosted by the controller.
type NetworksResponse struct {
	Networks []string `json:"networks"`
}

// NetworkResponse returns one network configuration.
type NetworkResponse struct {
	Network *network.Network `json:"network"`
}

// ValidateResponse is returned when a configuration passed validation.
type ValidateResponse struct {
	Valid   bool             `json:"valid"`
	Network *network.Network `json:"network"`
}

// MembersResponse maps member ids to their revision.
type MembersResponse struct {
	Members map[string]uint64 `json:"members"`
}

// MemberResponse returns one member after an authorization change.
type MemberResponse struct {
	Member *controller.Member `json:"member"`
}

// HealthCheckResponse returns health check results.
type HealthCheckResponse struct {
	Healthy       bool                   `json:"healthy"`
	Version       VersionInfo            `json:"version"`
	Checks        map[string]CheckResult `json:"checks"`
	ConfigHash    string                 `json:"config_hash,omitempty"`
	ConfigChanged bool                   `json:"config_changed"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}
