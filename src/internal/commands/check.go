package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maksimkurb/ztproxy/src/internal/config"
	"github.com/maksimkurb/ztproxy/src/internal/domain"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/log"
	"github.com/maksimkurb/ztproxy/src/internal/network"
	"github.com/maksimkurb/ztproxy/src/internal/networking"
)

func CreateCheckCommand() *CheckCommand {
	c := &CheckCommand{
		fs:    flag.NewFlagSet("check", flag.ContinueOnError),
		stdin: os.Stdin,
	}
	c.network.register(c.fs)
	c.fs.StringVar(&c.file, "file", "", "Network JSON to check (\"-\" reads stdin); flags describe the network otherwise")
	c.fs.BoolVar(&c.skipHostRoutes, "no-host-routes", false, "Skip the host route conflict check")
	return c
}

// CheckCommand validates a network configuration without contacting the
// controller and reports overlaps with the host routing table. Overlaps are
// warnings only.
type CheckCommand struct {
	fs    *flag.FlagSet
	ctx   *AppContext
	cfg   *config.Config
	deps  *domain.AppDependencies
	stdin io.Reader

	network        networkFlags
	file           string
	skipHostRoutes bool
}

func (c *CheckCommand) Name() string {
	return c.fs.Name()
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.deps, err = buildDependencies(ctx, cfg, false); err != nil {
		return err
	}

	return nil
}

func (c *CheckCommand) Run() error {
	n, err := c.loadNetwork()
	if err != nil {
		return err
	}

	if err := n.Validate(); err != nil {
		return err
	}

	out := c.ctx.stdout()
	fmt.Fprintf(out, "Network configuration is valid (%d routes, %d pools)\n", len(n.Routes), len(n.IPAssignmentPools))

	if c.skipHostRoutes {
		return nil
	}

	hostRoutes, err := c.deps.HostRouteLister().HostRoutes()
	if err != nil {
		log.Warnf("Skipping host route check: %v", err)
		return nil
	}

	conflicts := networking.FindConflicts(n.Routes, hostRoutes)
	for _, conflict := range conflicts {
		log.Warnf("%s", conflict)
		fmt.Fprintf(out, "warning: %s\n", conflict)
	}
	if len(conflicts) == 0 {
		log.Debugf("No overlaps with %d host routes", len(hostRoutes))
	}

	return nil
}

func (c *CheckCommand) loadNetwork() (*network.Network, error) {
	if c.file == "" {
		return c.network.build(c.cfg.Network)
	}

	var content []byte
	var err error
	if c.file == "-" {
		content, err = io.ReadAll(c.stdin)
	} else {
		content, err = os.ReadFile(c.file)
	}
	if err != nil {
		return nil, zterrors.NewUsageError(fmt.Sprintf("failed to read %s: %v", c.file, err))
	}

	n := network.Default()
	if err := json.Unmarshal(content, n); err != nil {
		return nil, zterrors.NewValidationError("invalid network JSON", err)
	}
	return n, nil
}
