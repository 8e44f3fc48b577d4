package config

import (
	"path/filepath"
	"time"
)

type Config struct {
	// ConfigVersion is the configuration file version.
	ConfigVersion uint8 `toml:"config_version" json:"config_version"`
	// Controller holds the controller connection settings.
	Controller *ControllerConfig `toml:"controller" json:"controller"`
	// API holds the local proxy API settings used by "ztproxy serve".
	API *APIConfig `toml:"api" json:"api"`
	// Network holds the defaults for networks created from the command line.
	Network *NetworkDefaults `toml:"network" json:"network"`

	_absConfigFilePath string
}

type ControllerConfig struct {
	// URL is the base URL of the controller service (default: http://127.0.0.1:9993).
	URL string `toml:"url" json:"url" validate:"required,http_url"`
	// AuthToken is the controller auth token. Prefer auth_token_file or the ZTPROXY_AUTH_TOKEN variable.
	AuthToken string `toml:"auth_token,omitempty" json:"-"`
	// AuthTokenFile is a file holding the auth token. Relative paths are resolved against the config directory.
	AuthTokenFile string `toml:"auth_token_file,omitempty" json:"auth_token_file,omitempty"`
	// TimeoutSeconds bounds every request to the controller (default: 10).
	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds" validate:"min=1,max=300"`
	// RetryAttempts is the number of attempts for read requests (default: 3). Mutating requests are never retried.
	RetryAttempts int `toml:"retry_attempts" json:"retry_attempts" validate:"min=1,max=10"`
	// RetryDelayMs is the pause between attempts in milliseconds (default: 1000).
	RetryDelayMs int `toml:"retry_delay_ms" json:"retry_delay_ms" validate:"min=0,max=60000"`
}

type APIConfig struct {
	// Listen is the host:port the proxy API binds to (default: 127.0.0.1:9994).
	Listen string `toml:"listen" json:"listen" validate:"required,hostport"`
	// LocalOnly rejects clients outside loopback and private ranges (default: true when the [api] section is absent).
	LocalOnly bool `toml:"local_only" json:"local_only"`
}

type NetworkDefaults struct {
	// Name is the name given to networks created without --name (default: tfnet).
	Name string `toml:"name" json:"name" validate:"max=127"`
	// Private requires member authorization (default: true when the [network] section is absent).
	Private bool `toml:"private" json:"private"`
	// Rules selects the rule preset: "accept" or "ethernet" (default: accept).
	Rules string `toml:"rules" json:"rules" validate:"oneof=accept ethernet"`
	// MTU is the network MTU, 0 keeps the controller default.
	MTU int `toml:"mtu" json:"mtu" validate:"omitempty,min=1280,max=10000"`
}

func (c *Config) GetConfigDir() string {
	return filepath.Dir(c._absConfigFilePath)
}

// GetConfigPath returns the absolute path the configuration was loaded from.
func (c *Config) GetConfigPath() string {
	return c._absConfigFilePath
}

// Timeout returns the per-request controller timeout.
func (c *ControllerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the pause between read attempts.
func (c *ControllerConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}
