package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maksimkurb/ztproxy/src/internal/domain"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
)

func CreateShowCommand() *ShowCommand {
	c := &ShowCommand{
		fs: flag.NewFlagSet("show", flag.ContinueOnError),
	}
	networkIDFlag(c.fs, &c.nwid)
	return c
}

// ShowCommand prints the configuration of one network.
type ShowCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies

	nwid string
}

func (c *ShowCommand) Name() string {
	return c.fs.Name()
}

func (c *ShowCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if err := requireNetworkID(c.nwid); err != nil {
		return err
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

func (c *ShowCommand) Run() error {
	n, err := c.deps.ControllerClient().Fetch(context.Background(), c.nwid)
	if err != nil {
		return err
	}

	return printJSON(c.ctx.stdout(), n)
}

func CreateListCommand() *ListCommand {
	return &ListCommand{
		fs: flag.NewFlagSet("list", flag.ContinueOnError),
	}
}

// ListCommand prints the ids of all networks, one per line.
type ListCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies
}

func (c *ListCommand) Name() string {
	return c.fs.Name()
}

func (c *ListCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
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

func (c *ListCommand) Run() error {
	ids, err := c.deps.ControllerClient().ListNetworks(context.Background())
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Fprintln(c.ctx.stdout(), id)
	}
	return nil
}

func CreateDestroyCommand() *DestroyCommand {
	c := &DestroyCommand{
		fs: flag.NewFlagSet("destroy", flag.ContinueOnError),
	}
	networkIDFlag(c.fs, &c.nwid)
	c.fs.BoolVar(&c.force, "force", false, "Confirm the deletion")
	return c
}

// DestroyCommand deletes a network from the controller.
type DestroyCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies

	nwid  string
	force bool
}

func (c *DestroyCommand) Name() string {
	return c.fs.Name()
}

func (c *DestroyCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if err := requireNetworkID(c.nwid); err != nil {
		return err
	}
	if !c.force {
		return zterrors.NewUsageError(fmt.Sprintf("refusing to destroy network %s without --force", c.nwid))
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

func (c *DestroyCommand) Run() error {
	if err := c.deps.ControllerClient().Delete(context.Background(), c.nwid); err != nil {
		return err
	}

	fmt.Fprintf(c.ctx.stdout(), "Network %s destroyed\n", c.nwid)
	return nil
}
