package config

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const hashCacheTTL = 5 * time.Minute

// ConfigHasher tracks whether the configuration file changed since the
// running server loaded it. The current hash is cached for hashCacheTTL.
type ConfigHasher struct {
	configPath string

	currentHash     string
	currentHashTime time.Time

	// Hash of the configuration the server started with
	activeHash string

	mu sync.RWMutex
}

// NewConfigHasher creates a new config hasher
func NewConfigHasher(configPath string) *ConfigHasher {
	return &ConfigHasher{
		configPath: configPath,
	}
}

// GetCurrentConfigHash returns cached hash of current config file
// Automatically calls UpdateCurrentConfigHash() on cache miss
func (h *ConfigHasher) GetCurrentConfigHash() (string, error) {
	h.mu.RLock()
	if time.Since(h.currentHashTime) < hashCacheTTL && h.currentHash != "" {
		hash := h.currentHash
		h.mu.RUnlock()
		return hash, nil
	}
	h.mu.RUnlock()

	return h.UpdateCurrentConfigHash()
}

// UpdateCurrentConfigHash reloads the file and recalculates its hash
// regardless of cache state.
func (h *ConfigHasher) UpdateCurrentConfigHash() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cfg, err := LoadConfig(h.configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	hash, err := CalculateHash(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	h.currentHash = hash
	h.currentHashTime = time.Now()

	return hash, nil
}

// GetActiveConfigHash returns hash of config that was active when the server started
func (h *ConfigHasher) GetActiveConfigHash() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.activeHash
}

// SetActiveConfigHash sets the hash of config when the server starts
func (h *ConfigHasher) SetActiveConfigHash(hash string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activeHash = hash
}

// IsConfigChanged reports whether the file on disk differs from the active
// configuration. Without an active hash nothing is considered changed.
func (h *ConfigHasher) IsConfigChanged() (bool, error) {
	active := h.GetActiveConfigHash()
	if active == "" {
		return false, nil
	}
	current, err := h.GetCurrentConfigHash()
	if err != nil {
		return false, err
	}
	return current != active, nil
}

// ConfigHashData represents the structure used for hashing
type ConfigHashData struct {
	Controller *ControllerConfig `json:"controller"`
	API        *APIConfig        `json:"api"`
	Network    *NetworkDefaults  `json:"network"`
	// Digest of the inline token, the token itself is never part of the data
	AuthTokenMD5 string `json:"auth_token_md5,omitempty"`
}

// CalculateHash returns the MD5 of the effective configuration.
func CalculateHash(config *Config) (string, error) {
	hashData := &ConfigHashData{
		Controller: config.Controller,
		API:        config.API,
		Network:    config.Network,
	}
	if config.Controller != nil && config.Controller.AuthToken != "" {
		sum := md5.Sum([]byte(config.Controller.AuthToken))
		hashData.AuthTokenMD5 = hex.EncodeToString(sum[:])
	}

	jsonBytes, err := json.Marshal(hashData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config data: %w", err)
	}

	hash := md5.Sum(jsonBytes)
	return hex.EncodeToString(hash[:]), nil
}
