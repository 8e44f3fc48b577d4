// Package config handles configuration file parsing and validation for ztproxy.
//
// The configuration is a TOML file (by default /etc/ztproxy/ztproxy.toml).
// A missing file is not an error: every setting has a default, so ztproxy
// works against a local controller without any configuration.
//
// # Configuration Structure
//
//   - [controller]: base URL, auth token or token file, timeout and retries
//   - [api]: listen address of the local proxy API
//   - [network]: defaults for networks created from the command line
//
// # Environment
//
// ZTPROXY_CONTROLLER_URL, ZTPROXY_AUTH_TOKEN, ZTPROXY_AUTH_TOKEN_FILE and
// ZTPROXY_LISTEN override the file. LoadEnvFile reads them from a dotenv
// file first.
//
// # Example Usage
//
//	cfg, err := config.LoadConfig(config.DefaultConfigPath)
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	cfg.ApplyEnv()
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	token, err := cfg.ResolveAuthToken()
package config
