package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dori/horas/internal/db"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration. Everything has a working
// default; the file is optional.
type Config struct {
	DataDir  string `toml:"data_dir"`
	DBFile   string `toml:"db_file"`
	Timezone string `toml:"timezone"`

	Notifications NotificationConfig `toml:"notifications"`
}

type NotificationConfig struct {
	Enabled       *bool  `toml:"enabled"`
	CheckInterval string `toml:"check_interval"`
}

// DefaultTimezone is the single zone all calendar math happens in.
const DefaultTimezone = "America/Santiago"

// SetDefault fills in defaults for any field the file left unset.
func (c *Config) SetDefault() {
	if c.DataDir == "" {
		c.DataDir = db.DefaultDataDir()
	}
	if c.DBFile == "" {
		c.DBFile = "horas.db"
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.Notifications.Enabled == nil {
		defaultVal := true
		c.Notifications.Enabled = &defaultVal
	}
	if c.Notifications.CheckInterval == "" {
		c.Notifications.CheckInterval = "15m"
	}
}

// DBPath returns the full database file path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// Location resolves the configured zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Interval parses the configured check interval.
func (c *Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Notifications.CheckInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid check_interval %q: %w", c.Notifications.CheckInterval, err)
	}
	return d, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "horas.toml"
	}
	return filepath.Join(home, ".config", "horas", "config.toml")
}

// LoadConfigFromFile reads the config file at path. A missing file is
// not an error; defaults apply.
func LoadConfigFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var cfg Config
			cfg.SetDefault()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses TOML config data and applies defaults.
func LoadConfigFromBytes(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.SetDefault()
	return cfg, nil
}
