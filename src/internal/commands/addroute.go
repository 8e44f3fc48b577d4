package commands

import (
	"context"
	"flag"
	"net/netip"

	"github.com/maksimkurb/ztproxy/src/internal/domain"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/log"
	"github.com/maksimkurb/ztproxy/src/internal/network"
)

func CreateAddRouteCommand() *AddRouteCommand {
	c := &AddRouteCommand{
		fs: flag.NewFlagSet("addroute", flag.ContinueOnError),
	}
	networkIDFlag(c.fs, &c.nwid)
	c.fs.StringVar(&c.dest, "dest", "", "Destination network address")
	c.fs.IntVar(&c.mask, "mask", -1, "Destination prefix length in bits")
	c.fs.StringVar(&c.gateway, "gateway", "", "Gateway inside one of the network's subnets (omit for a direct route)")
	addAliases(c.fs, "dest", "destnet", "d")
	addAliases(c.fs, "mask", "n")
	addAliases(c.fs, "gateway", "g")
	return c
}

type AddRouteCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies

	nwid    string
	dest    string
	mask    int
	gateway string
}

func (c *AddRouteCommand) Name() string {
	return c.fs.Name()
}

func (c *AddRouteCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if err := requireNetworkID(c.nwid); err != nil {
		return err
	}
	if c.mask < 0 {
		return zterrors.NewUsageError("--mask is required")
	}

	cfg, err := loadConfigOrFail(ctx)
	if err != nil {
		return err
	}

	if c.deps, err = buildDependencies(ctx, cfg, true); err != nil {
		return err
	}

	return nil
}

func (c *AddRouteCommand) Run() error {
	dest, err := parseAddrFlag("dest", c.dest)
	if err != nil {
		return err
	}
	target, err := network.NewPrefix(dest, c.mask)
	if err != nil {
		return err
	}

	var via *netip.Addr
	if c.gateway != "" {
		gw, err := parseAddrFlag("gateway", c.gateway)
		if err != nil {
			return err
		}
		via = &gw
	}

	ctx := context.Background()
	client := c.deps.ControllerClient()

	n, err := client.Fetch(ctx, c.nwid)
	if err != nil {
		return err
	}

	n.AppendRoute(network.NewRoute(target, via))
	if err := n.VerifyRoutes(); err != nil {
		return err
	}

	if via != nil {
		log.Infof("Adding route %s via %s to network %s", target, via, c.nwid)
	} else {
		log.Infof("Adding direct route %s to network %s", target, c.nwid)
	}

	updated, err := client.Update(ctx, n)
	if err != nil {
		return err
	}

	return printJSON(c.ctx.stdout(), updated)
}
