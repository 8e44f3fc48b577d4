// Package commands implements CLI command handlers for ztproxy.
//
// This package provides the command-line interface layer for the application.
// Each command implements the Runner interface and delegates to the network
// model and the controller client.
//
// # Command Structure
//
// All commands follow a consistent pattern:
//   - Init(): Parse arguments, load configuration and build dependencies
//   - Run(): Execute the command
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - create: Create a network (--dry-run prints it without sending)
//   - addsubnet, addnet: Add a subnet and its pool to a network
//   - addroute: Add a route, refusing gateways outside the network's subnets
//   - auth, deauth: Change member authorization
//   - destroy: Delete a network (requires --force)
//   - show, list, members: Inspect networks
//   - check: Validate a network locally and report host route overlaps
//   - serve: Run the local proxy API
//   - config: Print the effective configuration or write it (--write)
//
// # Example Usage
//
// Creating and running a command:
//
//	cmd := commands.CreateCreateCommand()
//	ctx := &commands.AppContext{
//	    ConfigPath: "/etc/ztproxy/ztproxy.toml",
//	    Verbose:    true,
//	}
//	if err := cmd.Init([]string{"--start", "10.10.10.10", "--mask", "24"}, ctx); err != nil {
//	    log.Fatal(commands.FormatError(err))
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatal(commands.FormatError(err))
//	}
//
// Errors carry a code from internal/errors; FormatError renders them as
// "[CODE] message".
package commands
