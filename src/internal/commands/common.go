package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/netip"
	"os"

	"github.com/maksimkurb/ztproxy/src/internal/api"
	"github.com/maksimkurb/ztproxy/src/internal/config"
	"github.com/maksimkurb/ztproxy/src/internal/controller"
	"github.com/maksimkurb/ztproxy/src/internal/domain"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/network"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	EnvFile    string
	Verbose    bool
	Version    api.VersionInfo

	// Deps replaces the dependencies otherwise built from the configuration.
	Deps *domain.AppDependencies

	// Stdout receives command output (os.Stdout when nil).
	Stdout io.Writer
}

func (ctx *AppContext) stdout() io.Writer {
	if ctx.Stdout != nil {
		return ctx.Stdout
	}
	return os.Stdout
}

// loadConfigOrFail loads the env file and the configuration file, applies
// environment overrides and validates the result.
func loadConfigOrFail(ctx *AppContext) (*config.Config, error) {
	if err := config.LoadEnvFile(ctx.EnvFile); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildDependencies returns ctx.Deps when set. Otherwise it creates the
// production dependencies; the auth token is resolved only when needToken
// is true.
func buildDependencies(ctx *AppContext, cfg *config.Config, needToken bool) (*domain.AppDependencies, error) {
	if ctx.Deps != nil {
		return ctx.Deps, nil
	}

	var token string
	if needToken {
		var err error
		if token, err = cfg.ResolveAuthToken(); err != nil {
			return nil, err
		}
	}

	return domain.NewAppDependencies(domain.AppConfig{
		Controller: controller.Options{
			BaseURL:       cfg.Controller.URL,
			AuthToken:     token,
			Timeout:       cfg.Controller.Timeout(),
			RetryAttempts: cfg.Controller.RetryAttempts,
			RetryDelay:    cfg.Controller.RetryDelay(),
		},
	}), nil
}

// parseFlags parses args, reporting flag errors as usage errors.
// flag.ErrHelp is returned unchanged.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return zterrors.NewUsageError(err.Error())
	}
	if fs.NArg() > 0 {
		return zterrors.NewUsageError(fmt.Sprintf("unexpected arguments: %v", fs.Args()))
	}
	return nil
}

// addAliases registers aliases sharing the value of the flag called name.
func addAliases(fs *flag.FlagSet, name string, aliases ...string) {
	f := fs.Lookup(name)
	for _, alias := range aliases {
		fs.Var(f.Value, alias, "Alias for -"+name)
	}
}

// isFlagSet reports whether the flag called name was set, under its own
// name or an alias.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	target := fs.Lookup(name)
	if target == nil {
		return false
	}
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Value == target.Value {
			set = true
		}
	})
	return set
}

// networkIDFlag registers --nwid with the -i and --ztnetid aliases.
func networkIDFlag(fs *flag.FlagSet, p *string) {
	fs.StringVar(p, "nwid", "", "Network id")
	addAliases(fs, "nwid", "i", "ztnetid")
}

func parseAddrFlag(name, value string) (netip.Addr, error) {
	if value == "" {
		return netip.Addr{}, zterrors.NewUsageError(fmt.Sprintf("--%s is required", name))
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return netip.Addr{}, zterrors.NewUsageError(fmt.Sprintf("--%s: invalid IP address %q", name, value))
	}
	return addr, nil
}

func requireNetworkID(nwid string) error {
	if nwid == "" {
		return zterrors.NewUsageError("--nwid is required")
	}
	if !network.IsNetworkID(nwid) {
		return zterrors.NewUsageError(fmt.Sprintf("--nwid: %q is not a network id (16 hex characters)", nwid))
	}
	return nil
}

func requireMemberID(memberID string) error {
	if memberID == "" {
		return zterrors.NewUsageError("--member is required")
	}
	if !controller.IsMemberID(memberID) {
		return zterrors.NewUsageError(fmt.Sprintf("--member: %q is not a member id (10 hex characters)", memberID))
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zterrors.NewInternalError("failed to encode output", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// FormatError renders err as "[CODE] message" for the command line.
func FormatError(err error) string {
	if coded, ok := err.(*zterrors.Error); ok {
		return coded.Error()
	}
	return fmt.Sprintf("[%s] %v", zterrors.CodeOf(err), err)
}
