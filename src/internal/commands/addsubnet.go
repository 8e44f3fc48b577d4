package commands

import (
	"context"
	"flag"

	"github.com/maksimkurb/ztproxy/src/internal/domain"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/log"
	"github.com/maksimkurb/ztproxy/src/internal/network"
)

// CreateAddSubnetCommand creates the command adding a directly connected
// subnet and its pool to an existing network. name is "addsubnet" or its
// alias "addnet".
func CreateAddSubnetCommand(name string) *AddSubnetCommand {
	c := &AddSubnetCommand{
		fs: flag.NewFlagSet(name, flag.ContinueOnError),
	}
	networkIDFlag(c.fs, &c.nwid)
	c.fs.StringVar(&c.start, "start", "", "First address of the new pool")
	c.fs.StringVar(&c.end, "end", "", "Last address of the new pool (default: last usable address of the subnet)")
	c.fs.IntVar(&c.mask, "mask", -1, "Subnet prefix length in bits")
	addAliases(c.fs, "start", "s")
	addAliases(c.fs, "end", "e")
	addAliases(c.fs, "mask", "n")
	return c
}

type AddSubnetCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies

	nwid  string
	start string
	end   string
	mask  int
}

func (c *AddSubnetCommand) Name() string {
	return c.fs.Name()
}

func (c *AddSubnetCommand) Init(args []string, ctx *AppContext) error {
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

func (c *AddSubnetCommand) Run() error {
	start, err := parseAddrFlag("start", c.start)
	if err != nil {
		return err
	}
	subnet, err := network.NewPrefix(start, c.mask)
	if err != nil {
		return err
	}
	end, err := poolEnd(start, c.end, c.mask)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := c.deps.ControllerClient()

	n, err := client.Fetch(ctx, c.nwid)
	if err != nil {
		return err
	}

	n.Merge(network.New(network.WithSubnet(subnet, network.NewAddressRange(start, end))))
	log.Infof("Adding subnet %s with pool %s-%s to network %s", subnet, start, end, c.nwid)

	updated, err := client.Update(ctx, n)
	if err != nil {
		return err
	}

	return printJSON(c.ctx.stdout(), updated)
}
