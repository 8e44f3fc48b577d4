package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/log"
	"github.com/maksimkurb/ztproxy/src/internal/utils"
)

const (
	DefaultConfigPath    = "/etc/ztproxy/ztproxy.toml"
	DefaultControllerURL = "http://127.0.0.1:9993"
	DefaultListen        = "127.0.0.1:9994"

	SystemAuthTokenPath = "/var/lib/zerotier-one/authtoken.secret"
	UserAuthTokenPath   = "~/.zeroTierOneAuthToken"
)

// Token locations of the controller service, tried in order when no token
// or token file is configured.
var authTokenPaths = []string{SystemAuthTokenPath, UserAuthTokenPath}

const (
	EnvControllerURL = "ZTPROXY_CONTROLLER_URL"
	EnvAuthToken     = "ZTPROXY_AUTH_TOKEN"
	EnvAuthTokenFile = "ZTPROXY_AUTH_TOKEN_FILE"
	EnvListen        = "ZTPROXY_LISTEN"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{ConfigVersion: 1}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Controller == nil {
		c.Controller = &ControllerConfig{}
	}
	if c.Controller.URL == "" {
		c.Controller.URL = DefaultControllerURL
	}
	if c.Controller.TimeoutSeconds == 0 {
		c.Controller.TimeoutSeconds = 10
	}
	if c.Controller.RetryAttempts == 0 {
		c.Controller.RetryAttempts = 3
	}
	if c.Controller.RetryDelayMs == 0 {
		c.Controller.RetryDelayMs = 1000
	}

	if c.API == nil {
		c.API = &APIConfig{LocalOnly: true}
	}
	if c.API.Listen == "" {
		c.API.Listen = DefaultListen
	}

	if c.Network == nil {
		c.Network = &NetworkDefaults{Private: true}
	}
	if c.Network.Name == "" {
		c.Network.Name = "tfnet"
	}
	if c.Network.Rules == "" {
		c.Network.Rules = "accept"
	}
}

// LoadConfig reads the TOML file at configPath. A missing file is not an
// error: defaults are returned and the path is remembered for WriteConfig.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(utils.ExpandHome(configPath))

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, zterrors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("Configuration file not found, using defaults: %s", configFile)
		cfg := Default()
		cfg._absConfigFilePath = configFile
		return cfg, nil
	}
	if err != nil {
		return nil, zterrors.NewConfigError("failed to read config file", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			return nil, zterrors.NewConfigError(
				fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, zterrors.NewConfigError("failed to parse config file", err)
	}

	config.applyDefaults()
	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)

	return &config, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win over the file.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(utils.ExpandHome(path)); err != nil {
		return zterrors.NewConfigError(fmt.Sprintf("failed to load env file %s", path), err)
	}
	return nil
}

// ApplyEnv overrides file settings with ZTPROXY_* environment variables.
func (c *Config) ApplyEnv() {
	c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvControllerURL); ok && v != "" {
		c.Controller.URL = v
	}
	if v, ok := lookup(EnvAuthToken); ok && v != "" {
		c.Controller.AuthToken = v
	}
	if v, ok := lookup(EnvAuthTokenFile); ok && v != "" {
		c.Controller.AuthTokenFile = v
	}
	if v, ok := lookup(EnvListen); ok && v != "" {
		c.API.Listen = v
	}
}

// ResolveAuthToken returns the controller auth token: the explicit token,
// then auth_token_file, then the system token, then the user token.
func (c *Config) ResolveAuthToken() (string, error) {
	if token := strings.TrimSpace(c.Controller.AuthToken); token != "" {
		return token, nil
	}

	if c.Controller.AuthTokenFile != "" {
		path := utils.ExpandHome(c.Controller.AuthTokenFile)
		if c._absConfigFilePath != "" {
			path = utils.GetAbsolutePath(path, c.GetConfigDir())
		}
		// An explicitly configured file must be readable.
		token, err := readToken(path)
		if err != nil {
			return "", zterrors.NewConfigError("failed to read auth token file", err)
		}
		return token, nil
	}
	for _, path := range authTokenPaths {
		path = utils.ExpandHome(path)
		token, err := readToken(path)
		if err == nil {
			log.Debugf("Using controller auth token from %s", path)
			return token, nil
		}
		log.Debugf("Auth token not available at %s: %v", path, err)
	}

	return "", zterrors.NewConfigError(
		fmt.Sprintf("no controller auth token found (set %s, auth_token_file, or make %s readable)",
			EnvAuthToken, SystemAuthTokenPath), nil)
}

func readToken(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(content))
	if token == "" {
		return "", fmt.Errorf("%s is empty", path)
	}
	return token, nil
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// WriteConfig stores the configuration at the path it was loaded from,
// creating the parent directory when needed.
func (c *Config) WriteConfig() error {
	if c._absConfigFilePath == "" {
		return zterrors.NewConfigError("configuration has no file path", nil)
	}
	config, err := c.SerializeConfig()
	if err != nil {
		return zterrors.NewConfigError("failed to serialize config", err)
	}
	if err := os.MkdirAll(filepath.Dir(c._absConfigFilePath), 0755); err != nil {
		return zterrors.NewConfigError("failed to create config directory", err)
	}
	if err := os.WriteFile(c._absConfigFilePath, config.Bytes(), 0600); err != nil {
		return zterrors.NewConfigError("failed to write config file", err)
	}
	return nil
}
