package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/ztproxy/src/internal/config"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/log"
)

// CreateConfigCommand creates the command printing the effective
// configuration, or writing it to the config path with --write.
func CreateConfigCommand() *ConfigCommand {
	c := &ConfigCommand{
		fs: flag.NewFlagSet("config", flag.ContinueOnError),
	}
	c.fs.BoolVar(&c.write, "write", false, "Write the configuration (file values plus defaults) to the config path")
	c.fs.BoolVar(&c.force, "force", false, "Overwrite an existing file with --write")
	return c
}

type ConfigCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	write bool
	force bool
}

func (c *ConfigCommand) Name() string {
	return c.fs.Name()
}

func (c *ConfigCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if c.force && !c.write {
		return zterrors.NewUsageError("--force requires --write")
	}

	// Environment overrides are left out so they never end up in the file.
	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

func (c *ConfigCommand) Run() error {
	if !c.write {
		return c.print()
	}

	path := c.cfg.GetConfigPath()
	if _, err := os.Stat(path); err == nil && !c.force {
		return zterrors.NewUsageError(fmt.Sprintf("%s already exists, use --force to overwrite it", path))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return zterrors.NewConfigError("failed to check config file", err)
	}

	if err := c.cfg.WriteConfig(); err != nil {
		return err
	}
	log.Infof("Configuration written to %s", path)
	fmt.Fprintln(c.ctx.stdout(), path)
	return nil
}

func (c *ConfigCommand) print() error {
	printed := *c.cfg
	controller := *c.cfg.Controller
	if controller.AuthToken != "" {
		controller.AuthToken = "<redacted>"
	}
	printed.Controller = &controller

	buf, err := printed.SerializeConfig()
	if err != nil {
		return zterrors.NewInternalError("failed to serialize config", err)
	}
	_, err = c.ctx.stdout().Write(buf.Bytes())
	return err
}
