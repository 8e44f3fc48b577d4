package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/ztproxy/src/internal/api"
	"github.com/maksimkurb/ztproxy/src/internal/commands"
	"github.com/maksimkurb/ztproxy/src/internal/config"
	"github.com/maksimkurb/ztproxy/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{
		Version: api.VersionInfo{Version: version, Commit: commit, Date: date},
	}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", config.DefaultConfigPath, "Path to configuration file")
	flag.StringVar(&ctx.EnvFile, "env-file", "", "Load environment variables from this file (existing variables win)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Controller network manager and local API proxy\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [command options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  create                  Create a network (--name, --start, --end, --mask, --private, --dry-run)\n")
		fmt.Fprintf(os.Stderr, "  addsubnet, addnet       Add a subnet and its pool to a network\n")
		fmt.Fprintf(os.Stderr, "  addroute                Add a route via a gateway inside the network\n")
		fmt.Fprintf(os.Stderr, "  auth                    Authorize a member\n")
		fmt.Fprintf(os.Stderr, "  deauth                  Revoke a member\n")
		fmt.Fprintf(os.Stderr, "  destroy                 Delete a network (requires --force)\n")
		fmt.Fprintf(os.Stderr, "  show                    Print a network configuration\n")
		fmt.Fprintf(os.Stderr, "  list                    List network ids\n")
		fmt.Fprintf(os.Stderr, "  members                 List the members of a network\n")
		fmt.Fprintf(os.Stderr, "  check                   Validate a network locally and report host route overlaps\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the local proxy API\n")
		fmt.Fprintf(os.Stderr, "  config                  Print the effective configuration, or store it with --write\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateCreateCommand(),
		commands.CreateAddSubnetCommand("addsubnet"),
		commands.CreateAddSubnetCommand("addnet"),
		commands.CreateAddRouteCommand(),
		commands.CreateAuthCommand(),
		commands.CreateDeauthCommand(),
		commands.CreateDestroyCommand(),
		commands.CreateShowCommand(),
		commands.CreateListCommand(),
		commands.CreateMembersCommand(),
		commands.CreateCheckCommand(),
		commands.CreateServeCommand(),
		commands.CreateConfigCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				exit(err)
			}

			if err := cmd.Run(); err != nil {
				exit(err)
			}

			os.Exit(0)
		}
	}

	log.Errorf("Unknown subcommand: %s", subcommand)
	flag.Usage()
	os.Exit(2)
}

func exit(err error) {
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintln(os.Stderr, commands.FormatError(err))
	os.Exit(1)
}
