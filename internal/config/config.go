// Package config loads the server configuration from a YAML file with
// Viper, falling back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Driver is "sqlite" (persistent) or "memory" (ephemeral).
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file, ignored by the memory driver.
	Path string `mapstructure:"path" yaml:"path"`
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	Origins []string `mapstructure:"origins" yaml:"origins"`
}

// ServerConfig is the top-level configuration for the server binary.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `mapstructure:"addr" yaml:"addr"`

	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	CORS    CORSConfig    `mapstructure:"cors" yaml:"cors"`

	// LogRequests enables per-request logging.
	LogRequests bool `mapstructure:"log_requests" yaml:"log_requests"`

	// Seed is an optional path to a JSON file holding the initial state.
	// When set, it replaces whatever the storage currently holds.
	Seed string `mapstructure:"seed" yaml:"seed"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todomock/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todomock", "config.yaml")
}

// DefaultStatePath returns the default SQLite database location,
// ~/.local/share/todomock/state.db.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "state.db")
	}
	return filepath.Join(home, ".local", "share", "todomock", "state.db")
}

func defaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr: ":8080",
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   DefaultStatePath(),
		},
		LogRequests: true,
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the default configuration.
func Load(path string) (*ServerConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("addr", ":8080")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", DefaultStatePath())
	v.SetDefault("log_requests", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultServerConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultServerConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultServerConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Storage.Driver != "sqlite" && cfg.Storage.Driver != "memory" {
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return cfg, nil
}
