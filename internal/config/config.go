// ABOUTME: YAML application configuration with storage backend selection
// ABOUTME: Resolves config path XDG-style and builds the configured Store

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/skim/internal/fetch"
	"github.com/harper/skim/internal/refresh"
	"github.com/harper/skim/internal/retention"
	"github.com/harper/skim/internal/storage"
)

// Config stores skim settings. Zero values mean "use the default".
type Config struct {
	// Backend selects the storage backend: "file" (default) or "sqlite".
	Backend string `yaml:"backend,omitempty"`

	// DataDir is the root directory for data storage. The file backend puts
	// feeds.json and the per-feed storage/ directory here; sqlite puts
	// skim.db here. Supports ~ expansion. Defaults to ~/.local/share/skim.
	DataDir string `yaml:"data_dir,omitempty"`

	// RetentionDays is the item retention window.
	RetentionDays int `yaml:"retention_days,omitempty"`

	// RefreshIntervalMinutes is the period between scheduled refresh passes.
	RefreshIntervalMinutes int `yaml:"refresh_interval_minutes,omitempty"`

	// FetchTimeoutSeconds bounds one feed fetch.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "file".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "file"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// Retention returns the configured retention policy.
func (c *Config) Retention() retention.Policy {
	return retention.Policy{Days: c.RetentionDays}
}

// RefreshInterval returns the period between scheduled refresh passes.
func (c *Config) RefreshInterval() time.Duration {
	if c.RefreshIntervalMinutes <= 0 {
		return refresh.DefaultInterval
	}
	return time.Duration(c.RefreshIntervalMinutes) * time.Minute
}

// FetchTimeout returns the per-request fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return fetch.DefaultTimeout
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// OpenStorage creates a Store implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Store, error) {
	dataDir := c.GetDataDir()

	switch backend := c.GetBackend(); backend {
	case "file":
		return storage.NewFileStore(dataDir, c.Retention())
	case "sqlite":
		return storage.NewSQLiteStore(filepath.Join(dataDir, "skim.db"), c.Retention())
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "skim", "config.yaml")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing default config is not an error: defaults apply. An
// explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// defaultDataDir returns the standard XDG data directory for skim.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "skim")
}
