package commands

import (
	"context"
	"flag"

	"github.com/maksimkurb/ztproxy/src/internal/config"
	"github.com/maksimkurb/ztproxy/src/internal/domain"
	"github.com/maksimkurb/ztproxy/src/internal/log"
)

func CreateCreateCommand() *CreateCommand {
	c := &CreateCommand{
		fs: flag.NewFlagSet("create", flag.ContinueOnError),
	}
	c.network.register(c.fs)
	c.fs.BoolVar(&c.dryRun, "dry-run", false, "Validate and print the network without sending it to the controller")
	return c
}

type CreateCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies

	network networkFlags
	dryRun  bool
}

func (c *CreateCommand) Name() string {
	return c.fs.Name()
}

func (c *CreateCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.deps, err = buildDependencies(ctx, cfg, !c.dryRun); err != nil {
		return err
	}

	return nil
}

func (c *CreateCommand) Run() error {
	n, err := c.network.build(c.cfg.Network)
	if err != nil {
		return err
	}

	if c.dryRun {
		if err := n.Validate(); err != nil {
			return err
		}
		log.Infof("Dry run: network is valid and was not sent to the controller")
		return printJSON(c.ctx.stdout(), n)
	}

	created, err := c.deps.ControllerClient().Create(context.Background(), n)
	if err != nil {
		return err
	}

	return printJSON(c.ctx.stdout(), created)
}
