// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Remote    RemoteConfig    `mapstructure:"remote"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Journal   JournalConfig   `mapstructure:"journal"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	User      UserConfig      `mapstructure:"user"`
}

// RemoteConfig holds the remote document store connection.
type RemoteConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// CacheConfig holds the local cache location.
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// JournalConfig holds day-log editing behavior.
type JournalConfig struct {
	DebounceMs int `mapstructure:"debounce_ms"`
}

// DashboardConfig holds dashboard presentation settings.
type DashboardConfig struct {
	LogGoal int `mapstructure:"log_goal"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Console    bool   `mapstructure:"console"`
}

// UserConfig identifies the journal owner.
type UserConfig struct {
	ID          string `mapstructure:"id"`
	Email       string `mapstructure:"email"`
	DisplayName string `mapstructure:"display_name"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradelight"
	}
	return filepath.Join(home, ".config", "tradelight")
}

// DefaultCachePath returns the default local cache database location.
func DefaultCachePath() string {
	return filepath.Join(DefaultConfigDir(), "cache.db")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyDefaults(cfg *Config) {
	if cfg.Remote.ConnectTimeout == 0 {
		cfg.Remote.ConnectTimeout = 10 * time.Second
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath()
	}
	if cfg.Journal.DebounceMs == 0 {
		cfg.Journal.DebounceMs = 2000
	}
	if cfg.Dashboard.LogGoal == 0 {
		cfg.Dashboard.LogGoal = 30
	}
	if cfg.UI.DateFormat == "" {
		cfg.UI.DateFormat = "Jan 2, 2006"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADELIGHT_REMOTE_URI"); v != "" {
		cfg.Remote.URI = v
	}
	if v := os.Getenv("TRADELIGHT_REMOTE_DATABASE"); v != "" {
		cfg.Remote.Database = v
	}
	if v := os.Getenv("TRADELIGHT_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("TRADELIGHT_USER_ID"); v != "" {
		cfg.User.ID = v
	}
	if v := os.Getenv("TRADELIGHT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.DebounceMs < 0 {
		return fmt.Errorf("journal debounce_ms must be non-negative")
	}
	if c.Dashboard.LogGoal < 1 {
		return fmt.Errorf("dashboard log_goal must be positive")
	}
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}

// Debounce returns the journal debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Journal.DebounceMs) * time.Millisecond
}

// Offline returns true when no remote store is configured.
func (c *Config) Offline() bool {
	return c.Remote.URI == ""
}
