package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/netip"
)

// AssignMode selects how the controller assigns addresses of one family.
type AssignMode string

const (
	AssignModeZT      AssignMode = "zt"
	AssignModeNone    AssignMode = "none"
	AssignMode6Plane  AssignMode = "6plane"
	AssignModeRFC4193 AssignMode = "rfc4193"
)

// UnmarshalJSON accepts the string form ("zt") as well as the object form
// some controller versions return ({"zt": true, "6plane": false}). The first
// enabled mode in zt, 6plane, rfc4193 order wins; none enabled means "none".
func (m *AssignMode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var flags map[string]bool
		if err := json.Unmarshal(data, &flags); err != nil {
			return fmt.Errorf("invalid assign mode object: %w", err)
		}
		for _, mode := range []AssignMode{AssignModeZT, AssignMode6Plane, AssignModeRFC4193} {
			if flags[string(mode)] {
				*m = mode
				return nil
			}
		}
		*m = AssignModeNone
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid assign mode: %w", err)
	}
	*m = AssignMode(s)
	return nil
}

// DNS is the resolver configuration pushed to members.
type DNS struct {
	Domain  string       `json:"domain" validate:"omitempty,dns_domain"`
	Servers []netip.Addr `json:"servers"`
}

// decodeDNS decodes the dns field. Controllers send [] for a network
// without DNS settings; [] and null both yield nil.
func decodeDNS(raw json.RawMessage) (*DNS, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("invalid dns: %w", err)
		}
		if len(items) > 0 {
			return nil, fmt.Errorf("invalid dns: expected an object, got an array of %d items", len(items))
		}
		return nil, nil
	}
	var dns DNS
	if err := json.Unmarshal(raw, &dns); err != nil {
		return nil, err
	}
	return &dns, nil
}

// Network is the configuration of one controller network. The controller
// assigns ID (and NWID); both stay nil until the network has been created.
type Network struct {
	ID                   *string        `json:"id,omitempty" validate:"omitempty,network_id"`
	NWID                 *string        `json:"nwid,omitempty" validate:"omitempty,network_id"`
	Name                 *string        `json:"name,omitempty" validate:"omitempty,max=127"`
	Private              bool           `json:"private"`
	AllowPassiveBridging bool           `json:"allowPassiveBridging"`
	V4AssignMode         AssignMode     `json:"v4AssignMode" validate:"oneof=zt none"`
	V6AssignMode         AssignMode     `json:"v6AssignMode" validate:"oneof=zt none 6plane rfc4193"`
	Routes               []Route        `json:"routes"`
	IPAssignmentPools    []AddressRange `json:"ipAssignmentPools"`
	Rules                []Rule         `json:"rules" validate:"dive"`
	Capabilities         RuleList       `json:"capabilities,omitzero"`
	Tags                 RuleList       `json:"tags,omitzero"`

	EnableBroadcast *bool `json:"enableBroadcast,omitempty"`
	MTU             int   `json:"mtu,omitempty" validate:"omitempty,min=1280,max=10000"`
	MulticastLimit  int   `json:"multicastLimit,omitempty" validate:"gte=0"`
	DNS             *DNS  `json:"dns,omitempty"`

	// Read-only, set by the controller.
	CreationTime int64  `json:"creationTime,omitempty"`
	Revision     uint64 `json:"revision,omitempty"`
}

// UnmarshalJSON decodes n on top of its current value, like the default
// decoder, with the dns field handled by decodeDNS.
func (n *Network) UnmarshalJSON(data []byte) error {
	type Alias Network
	aux := struct {
		*Alias
		DNS json.RawMessage `json:"dns"`
	}{Alias: (*Alias)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DNS == nil {
		return nil
	}
	dns, err := decodeDNS(aux.DNS)
	if err != nil {
		return err
	}
	n.DNS = dns
	return nil
}

// NetworkID returns the controller-assigned id, preferring ID over NWID.
// It returns "" for a network that has not been created yet.
func (n *Network) NetworkID() string {
	if n.ID != nil && *n.ID != "" {
		return *n.ID
	}
	if n.NWID != nil {
		return *n.NWID
	}
	return ""
}

// SetNetworkID attaches an existing network id.
func (n *Network) SetNetworkID(id string) {
	n.NWID = &id
}

// AppendRoute adds a route to the network.
func (n *Network) AppendRoute(r Route) {
	n.Routes = append(n.Routes, r.clone())
}

// AppendSubnet adds a directly connected subnet together with its pool.
func (n *Network) AppendSubnet(r Route, pool AddressRange) {
	n.AppendRoute(r)
	n.IPAssignmentPools = append(n.IPAssignmentPools, pool)
}

// Merge appends the routes and pools of other that n does not already have.
// Identity, rules and flags of n are kept.
func (n *Network) Merge(other *Network) {
	for _, r := range other.Routes {
		if !n.hasRoute(r) {
			n.AppendRoute(r)
		}
	}
	for _, p := range other.IPAssignmentPools {
		if !n.hasPool(p) {
			n.IPAssignmentPools = append(n.IPAssignmentPools, p)
		}
	}
}

func (n *Network) hasRoute(r Route) bool {
	for _, existing := range n.Routes {
		if existing.Target == r.Target && sameGateway(existing.Via, r.Via) {
			return true
		}
	}
	return false
}

func (n *Network) hasPool(p AddressRange) bool {
	for _, existing := range n.IPAssignmentPools {
		if existing == p {
			return true
		}
	}
	return false
}

func sameGateway(a, b *netip.Addr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Clone returns a deep copy of n.
func (n *Network) Clone() *Network {
	c := *n
	c.ID = cloneString(n.ID)
	c.NWID = cloneString(n.NWID)
	c.Name = cloneString(n.Name)
	if n.EnableBroadcast != nil {
		v := *n.EnableBroadcast
		c.EnableBroadcast = &v
	}
	if n.Routes != nil {
		c.Routes = make([]Route, len(n.Routes))
		for i, r := range n.Routes {
			c.Routes[i] = r.clone()
		}
	}
	if n.IPAssignmentPools != nil {
		c.IPAssignmentPools = append([]AddressRange{}, n.IPAssignmentPools...)
	}
	if n.Rules != nil {
		c.Rules = append([]Rule{}, n.Rules...)
	}
	if n.Capabilities.Present() {
		c.Capabilities = RulesOf(n.Capabilities.rules...)
	}
	if n.Tags.Present() {
		c.Tags = RulesOf(n.Tags.rules...)
	}
	if n.DNS != nil {
		dns := DNS{Domain: n.DNS.Domain}
		if n.DNS.Servers != nil {
			dns.Servers = append([]netip.Addr{}, n.DNS.Servers...)
		}
		c.DNS = &dns
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
