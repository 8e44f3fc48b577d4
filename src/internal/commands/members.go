package commands

import (
	"context"
	"flag"

	"github.com/maksimkurb/ztproxy/src/internal/controller"
	"github.com/maksimkurb/ztproxy/src/internal/domain"
)

// CreateAuthCommand creates the command authorizing a member.
func CreateAuthCommand() *MemberAuthCommand {
	return newMemberAuthCommand("auth", true)
}

// CreateDeauthCommand creates the command revoking a member.
func CreateDeauthCommand() *MemberAuthCommand {
	return newMemberAuthCommand("deauth", false)
}

func newMemberAuthCommand(name string, authorize bool) *MemberAuthCommand {
	c := &MemberAuthCommand{
		fs:        flag.NewFlagSet(name, flag.ContinueOnError),
		authorize: authorize,
	}
	networkIDFlag(c.fs, &c.nwid)
	c.fs.StringVar(&c.member, "member", "", "Member node id (10 hex characters)")
	addAliases(c.fs, "member", "clid", "c")
	return c
}

type MemberAuthCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies

	authorize bool
	nwid      string
	member    string
}

func (c *MemberAuthCommand) Name() string {
	return c.fs.Name()
}

func (c *MemberAuthCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if err := requireNetworkID(c.nwid); err != nil {
		return err
	}
	if err := requireMemberID(c.member); err != nil {
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

func (c *MemberAuthCommand) Run() error {
	client := c.deps.ControllerClient()

	var (
		member *controller.Member
		err    error
	)
	if c.authorize {
		member, err = client.Authorize(context.Background(), c.nwid, c.member)
	} else {
		member, err = client.Deauthorize(context.Background(), c.nwid, c.member)
	}
	if err != nil {
		return err
	}

	return printJSON(c.ctx.stdout(), member)
}

func CreateMembersCommand() *MembersCommand {
	c := &MembersCommand{
		fs: flag.NewFlagSet("members", flag.ContinueOnError),
	}
	networkIDFlag(c.fs, &c.nwid)
	return c
}

// MembersCommand lists the members of a network with their revision.
type MembersCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies

	nwid string
}

func (c *MembersCommand) Name() string {
	return c.fs.Name()
}

func (c *MembersCommand) Init(args []string, ctx *AppContext) error {
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

func (c *MembersCommand) Run() error {
	members, err := c.deps.ControllerClient().ListMembers(context.Background(), c.nwid)
	if err != nil {
		return err
	}
	if members == nil {
		members = map[string]uint64{}
	}

	return printJSON(c.ctx.stdout(), members)
}
