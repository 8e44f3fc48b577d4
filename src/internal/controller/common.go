package controller

import (
	"net/netip"
	"net/url"
	"regexp"

	"github.com/valyala/fasttemplate"
)

const (
	// DefaultBaseURL is the local controller service.
	DefaultBaseURL = "http://127.0.0.1:9993"

	// AuthHeader carries the controller auth token on every request.
	AuthHeader = "X-ZT1-Auth"
)

// Endpoint templates, relative to the base URL.
const (
	endpointStatus   = "/status"
	endpointNetworks = "/controller/network"
	// The controller picks a free network id when the last six characters
	// of the id are underscores.
	endpointCreate  = "/controller/network/{{node}}______"
	endpointNetwork = "/controller/network/{{nwid}}"
	endpointMembers = "/controller/network/{{nwid}}/member"
	endpointMember  = "/controller/network/{{nwid}}/member/{{member}}"
)

var memberIDRegexp = regexp.MustCompile(`^[0-9a-fA-F]{10}$`)

// IsMemberID reports whether id looks like a member (node) address: 10 hex
// characters.
func IsMemberID(id string) bool {
	return memberIDRegexp.MatchString(id)
}

// endpoint expands an endpoint template. Values are path-escaped.
func endpoint(template string, values map[string]string) string {
	args := make(map[string]interface{}, len(values))
	for k, v := range values {
		args[k] = url.PathEscape(v)
	}
	return fasttemplate.ExecuteString(template, "{{", "}}", args)
}

// NodeStatus is the controller node's /status response.
type NodeStatus struct {
	Address              string `json:"address"`
	PublicIdentity       string `json:"publicIdentity"`
	Online               bool   `json:"online"`
	Version              string `json:"version"`
	TCPFallbackActive    bool   `json:"tcpFallbackActive"`
	PlanetWorldID        uint64 `json:"planetWorldId"`
	PlanetWorldTimestamp int64  `json:"planetWorldTimestamp"`
}

// Member is a node joined to a controller network.
type Member struct {
	ID            string       `json:"id"`
	Address       string       `json:"address"`
	NWID          string       `json:"nwid"`
	Authorized    bool         `json:"authorized"`
	ActiveBridge  bool         `json:"activeBridge"`
	IPAssignments []netip.Addr `json:"ipAssignments"`
	Revision      uint64       `json:"revision"`
}

type memberUpdate struct {
	Authorized bool `json:"authorized"`
}
