package network

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EtherType is an Ethernet frame type code used by MATCH_ETHERTYPE rules.
// Codes without a named constant are carried verbatim.
type EtherType uint16

const (
	EtherTypeIPv4 EtherType = 0x0800
	EtherTypeARP  EtherType = 0x0806
	EtherTypeIPv6 EtherType = 0x86dd
)

// Known reports whether t is one of the named ether types.
func (t EtherType) Known() bool {
	switch t {
	case EtherTypeIPv4, EtherTypeARP, EtherTypeIPv6:
		return true
	}
	return false
}

func (t EtherType) String() string {
	switch t {
	case EtherTypeIPv4:
		return "IPv4"
	case EtherTypeARP:
		return "ARP"
	case EtherTypeIPv6:
		return "IPv6"
	}
	return fmt.Sprintf("0x%04x", uint16(t))
}

// RuleType is the controller's rule opcode.
type RuleType string

const (
	RuleMatchEtherType RuleType = "MATCH_ETHERTYPE"
	RuleActionAccept   RuleType = "ACTION_ACCEPT"
	RuleActionDrop     RuleType = "ACTION_DROP"
)

// Rule is one entry of a network's ordered rule set. The controller
// evaluates rules top to bottom; Or joins a match with the next one and Not
// negates it.
type Rule struct {
	EtherType EtherType `json:"etherType,omitempty"`
	Not       bool      `json:"not"`
	Or        bool      `json:"or"`
	Type      RuleType  `json:"type" validate:"required"`
}

// NewRule creates a rule.
func NewRule(etherType EtherType, not, or bool, ruleType RuleType) Rule {
	return Rule{EtherType: etherType, Not: not, Or: or, Type: ruleType}
}

// AcceptRule returns an ACTION_ACCEPT rule.
func AcceptRule() Rule {
	return Rule{Type: RuleActionAccept}
}

// DropRule returns an ACTION_DROP rule.
func DropRule() Rule {
	return Rule{Type: RuleActionDrop}
}

// MatchEtherType returns a MATCH_ETHERTYPE rule, negated when not is true.
func MatchEtherType(t EtherType, not bool) Rule {
	return Rule{EtherType: t, Not: not, Type: RuleMatchEtherType}
}

// DefaultRules is the permissive rule set: accept everything.
func DefaultRules() []Rule {
	return []Rule{AcceptRule()}
}

// EthernetOnlyRules drops every frame that is not IPv4, ARP or IPv6, then
// accepts the rest.
func EthernetOnlyRules() []Rule {
	return []Rule{
		MatchEtherType(EtherTypeIPv4, true),
		MatchEtherType(EtherTypeARP, true),
		MatchEtherType(EtherTypeIPv6, true),
		DropRule(),
		AcceptRule(),
	}
}

// RuleList is a rule array that distinguishes "absent" from "present but
// empty". The zero value is absent and is omitted from JSON (with omitzero);
// a JSON null also decodes to absent.
type RuleList struct {
	rules   []Rule
	present bool
}

// RulesOf returns a present list holding rules. RulesOf() is present-empty.
func RulesOf(rules ...Rule) RuleList {
	return RuleList{rules: append([]Rule{}, rules...), present: true}
}

// Present reports whether the list was set.
func (l RuleList) Present() bool { return l.present }

// IsZero reports whether the list is absent.
func (l RuleList) IsZero() bool { return !l.present }

// Len returns the number of rules.
func (l RuleList) Len() int { return len(l.rules) }

// Rules returns a copy of the rules, nil when absent.
func (l RuleList) Rules() []Rule {
	if !l.present {
		return nil
	}
	return append([]Rule{}, l.rules...)
}

func (l RuleList) MarshalJSON() ([]byte, error) {
	if !l.present {
		return []byte("null"), nil
	}
	if l.rules == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.rules)
}

func (l *RuleList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = RuleList{}
		return nil
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return err
	}
	*l = RulesOf(rules...)
	return nil
}
