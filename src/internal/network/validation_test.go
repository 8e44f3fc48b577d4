package network

import (
	"errors"
	"net/netip"
	"strings"
	"testing"

	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
)

func validationPaths(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	paths := make(map[string]string, len(ve))
	for _, e := range ve {
		paths[e.FieldPath] = e.Message
	}
	return paths
}

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		n    *Network
	}{
		{"default", Default()},
		{"with gateway route", New(WithRoute(route("172.16.0.0/16", gw("169.254.0.1"))))},
		{"full", New(
			WithName("office"),
			WithRules(EthernetOnlyRules()...),
			WithMTU(2800),
			WithDNS("office.example.com", netip.MustParseAddr("169.254.0.53")),
			WithAssignModes(AssignModeZT, AssignModeRFC4193),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.n.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(n *Network)
		wantPath string
	}{
		{
			name:     "bad network id",
			mutate:   func(n *Network) { n.SetNetworkID("not-hex") },
			wantPath: "nwid",
		},
		{
			name: "name too long",
			mutate: func(n *Network) {
				s := strings.Repeat("x", 128)
				n.Name = &s
			},
			wantPath: "name",
		},
		{
			name:     "unknown v4 assign mode",
			mutate:   func(n *Network) { n.V4AssignMode = AssignMode6Plane },
			wantPath: "v4AssignMode",
		},
		{
			name:     "mtu too small",
			mutate:   func(n *Network) { n.MTU = 576 },
			wantPath: "mtu",
		},
		{
			name:     "negative multicast limit",
			mutate:   func(n *Network) { n.MulticastLimit = -1 },
			wantPath: "multicastLimit",
		},
		{
			name:     "rule without type",
			mutate:   func(n *Network) { n.Rules = append(n.Rules, Rule{}) },
			wantPath: "rules.1.type",
		},
		{
			name:     "route without target",
			mutate:   func(n *Network) { n.Routes = append(n.Routes, Route{}) },
			wantPath: "routes.1.target",
		},
		{
			name:     "gateway without carrier",
			mutate:   func(n *Network) { n.AppendRoute(route("172.16.0.0/16", gw("10.9.9.9"))) },
			wantPath: "routes.1.via",
		},
		{
			name: "pool outside routes",
			mutate: func(n *Network) {
				n.IPAssignmentPools[0] = NewAddressRange(netip.MustParseAddr("10.0.0.1"), netip.MustParseAddr("10.0.0.9"))
			},
			wantPath: "ipAssignmentPools.0",
		},
		{
			name: "reversed pool",
			mutate: func(n *Network) {
				n.IPAssignmentPools[0] = NewAddressRange(DefaultPoolEnd, DefaultPoolStart)
			},
			wantPath: "ipAssignmentPools.0",
		},
		{
			name: "mixed family pool",
			mutate: func(n *Network) {
				n.IPAssignmentPools[0] = NewAddressRange(DefaultPoolStart, netip.MustParseAddr("fd00::1"))
			},
			wantPath: "ipAssignmentPools.0",
		},
		{
			name:     "bad dns domain",
			mutate:   func(n *Network) { n.DNS = &DNS{Domain: "a..example"} },
			wantPath: "dns.domain",
		},
		{
			name:     "dns servers without domain",
			mutate:   func(n *Network) { n.DNS = &DNS{Servers: []netip.Addr{DefaultPoolStart}} },
			wantPath: "dns.domain",
		},
		{
			name:     "invalid dns server",
			mutate:   func(n *Network) { n.DNS = &DNS{Domain: "example.com", Servers: []netip.Addr{{}}} },
			wantPath: "dns.servers.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Default()
			tt.mutate(n)

			err := n.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			paths := validationPaths(t, err)
			if _, ok := paths[tt.wantPath]; !ok {
				t.Errorf("expected an error for %q, got %v", tt.wantPath, paths)
			}
			if !errors.Is(err, zterrors.ErrValidation) {
				t.Error("expected errors.Is(err, ErrValidation)")
			}
			if code := zterrors.CodeOf(err); code != zterrors.ErrCodeValidation {
				t.Errorf("CodeOf() = %s", code)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	n := Default()
	n.MTU = 1
	n.AppendRoute(route("172.16.0.0/16", gw("10.9.9.9")))
	n.AppendRoute(route("172.17.0.0/16", gw("10.9.9.10")))

	err := n.Validate()
	paths := validationPaths(t, err)
	for _, want := range []string{"mtu", "routes.1.via", "routes.2.via"} {
		if _, ok := paths[want]; !ok {
			t.Errorf("missing error for %q in %v", want, paths)
		}
	}

	var carryErr *NoCarryingNetworkError
	if !errors.As(err, &carryErr) {
		t.Fatal("expected a *NoCarryingNetworkError cause")
	}
	if carryErr.RouteIndex != 1 {
		t.Errorf("RouteIndex = %d, want the first failing route", carryErr.RouteIndex)
	}
	if !errors.Is(err, zterrors.ErrNoCarryingNetwork) {
		t.Error("expected errors.Is(err, ErrNoCarryingNetwork)")
	}
}

func TestIsNetworkID(t *testing.T) {
	tests := map[string]bool{
		"8056c2e21c000001": true,
		"8056C2E21C000001": true,
		"8056c2e21c00000":  false,
		"8056c2e21c00000g": false,
		"":                 false,
	}
	for id, want := range tests {
		if got := IsNetworkID(id); got != want {
			t.Errorf("IsNetworkID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	ve := ValidationErrors{
		{FieldPath: "mtu", Message: "must be >= 1280"},
		{FieldPath: "routes.1.via", Message: "no carrying network for gateway 10.9.9.9"},
	}
	msg := ve.Error()
	if !strings.Contains(msg, "2 error(s)") || !strings.Contains(msg, "routes.1.via") {
		t.Errorf("Error() = %q", msg)
	}
	if got := ve.Fields()["mtu"]; got != "must be >= 1280" {
		t.Errorf("Fields()[mtu] = %v", got)
	}
}
