// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/b2m/config.yml.
type GlobalConfig struct {
	UserAgent       string  `yaml:"user_agent,omitempty"`
	FetchRatePerSec float64 `yaml:"fetch_rate_per_sec,omitempty"`
	CacheTTLHours   int     `yaml:"cache_ttl_hours,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "b2m"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/b2m/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetUserAgent returns the configured User-Agent string.
// The B2M_USER_AGENT environment variable takes precedence.
func GetUserAgent() string {
	if ua := os.Getenv("B2M_USER_AGENT"); ua != "" {
		return ua
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.UserAgent
}

// GetFetchRate returns the configured fetch rate in requests per second,
// or 0 if unset.
func GetFetchRate() float64 {
	cfg, _ := LoadGlobalConfig()
	return cfg.FetchRatePerSec
}

// GetCacheTTL returns the configured cache TTL, or 0 if unset.
func GetCacheTTL() time.Duration {
	cfg, _ := LoadGlobalConfig()
	return time.Duration(cfg.CacheTTLHours) * time.Hour
}
