package commands

import (
	"flag"
	"fmt"
	"net/netip"

	"github.com/maksimkurb/ztproxy/src/internal/config"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/network"
)

// networkFlags are the flags describing a new network, shared by create and
// check. Unset flags fall back to the [network] section of the config.
type networkFlags struct {
	fs *flag.FlagSet

	name    string
	private bool
	start   string
	end     string
	mask    int
	rules   string
	mtu     int
}

func (f *networkFlags) register(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.name, "name", "", "Network name (default from config)")
	fs.BoolVar(&f.private, "private", true, "Require member authorization (default from config)")
	fs.StringVar(&f.start, "start", "", "First address of the assignment pool; selects the subnet together with --mask")
	fs.StringVar(&f.end, "end", "", "Last address of the assignment pool (default: last usable address of the subnet)")
	fs.IntVar(&f.mask, "mask", -1, "Subnet prefix length in bits")
	fs.StringVar(&f.rules, "rules", "", "Rule preset: accept or ethernet (default from config)")
	fs.IntVar(&f.mtu, "mtu", 0, "Network MTU (default from config)")
	addAliases(fs, "name", "n")
	addAliases(fs, "private", "p")
	addAliases(fs, "start", "s")
	addAliases(fs, "end", "e")
	addAliases(fs, "mask", "m")
}

// build returns the network described by the flags. Without --start the
// link-local defaults are used.
func (f *networkFlags) build(defaults *config.NetworkDefaults) (*network.Network, error) {
	name := defaults.Name
	if isFlagSet(f.fs, "name") {
		name = f.name
	}
	private := defaults.Private
	if isFlagSet(f.fs, "private") {
		private = f.private
	}

	var n *network.Network
	if f.start == "" {
		if f.end != "" || f.mask >= 0 {
			return nil, zterrors.NewUsageError("--end and --mask require --start")
		}
		n = network.New(network.WithName(name), network.WithPrivate(private))
	} else {
		start, err := parseAddrFlag("start", f.start)
		if err != nil {
			return nil, err
		}
		if f.mask < 0 {
			return nil, zterrors.NewUsageError("--mask is required with --start")
		}
		end, err := poolEnd(start, f.end, f.mask)
		if err != nil {
			return nil, err
		}
		if n, err = network.With(&name, private, start, end, f.mask, nil); err != nil {
			return nil, err
		}
	}

	rules := defaults.Rules
	if f.rules != "" {
		rules = f.rules
	}
	switch rules {
	case "accept":
		n.Rules = network.DefaultRules()
	case "ethernet":
		n.Rules = network.EthernetOnlyRules()
	default:
		return nil, zterrors.NewUsageError(fmt.Sprintf("--rules: unknown preset %q (accept or ethernet)", rules))
	}

	n.MTU = defaults.MTU
	if f.mtu > 0 {
		n.MTU = f.mtu
	}

	return n, nil
}

// poolEnd parses end, or derives the last usable address of the subnet of
// start when end is empty.
func poolEnd(start netip.Addr, end string, mask int) (netip.Addr, error) {
	if end != "" {
		return parseAddrFlag("end", end)
	}
	prefix, err := network.NewPrefix(start, mask)
	if err != nil {
		return netip.Addr{}, err
	}
	pool, err := network.PoolForPrefix(prefix)
	if err != nil {
		return netip.Addr{}, err
	}
	return pool.End, nil
}
