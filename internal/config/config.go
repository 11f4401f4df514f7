// Package config handles the XDG configuration directory, the optional
// config.yaml file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// DatabaseFile is the default sqlite database filename.
	DatabaseFile = "tasks.db"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultDriver is the storage driver used when none is configured.
	DefaultDriver = "sqlite"

	// DefaultStatus is the status given to tasks added without one.
	DefaultStatus = "To do"
)

// Environment variables that override config.yaml.
const (
	EnvDriver        = "TODO_DB_DRIVER"
	EnvDSN           = "TODO_DB_DSN"
	EnvDefaultStatus = "TODO_DEFAULT_STATUS"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Driver selects the storage backend: sqlite, mysql or postgres.
	Driver string

	// DSN is the data source name. Empty means the sqlite file in Dir.
	DSN string

	// DefaultStatus is applied by add and the console when no status is given.
	DefaultStatus string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives debug and error logs. Never nil after New.
	Logger *slog.Logger
}

type fileConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	DefaultStatus string `yaml:"default_status"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:           dir,
		Driver:        DefaultDriver,
		DefaultStatus: DefaultStatus,
		Logger:        NewLogger(io.Discard, false),
	}, nil
}

// Load applies config.yaml (if present) and then environment overrides.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.FilePath())
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse %s: %w", ConfigFile, err)
		}
		c.apply(fc.Driver, fc.DSN, fc.DefaultStatus)
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	c.apply(os.Getenv(EnvDriver), os.Getenv(EnvDSN), os.Getenv(EnvDefaultStatus))

	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	return nil
}

func (c *Config) apply(driver, dsn, status string) {
	if strings.TrimSpace(driver) != "" {
		c.Driver = driver
	}
	if strings.TrimSpace(dsn) != "" {
		c.DSN = dsn
	}
	if strings.TrimSpace(status) != "" {
		c.DefaultStatus = strings.TrimSpace(status)
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// StoreDSN returns the data source name handed to the storage driver.
// Only sqlite falls back to the database file in Dir; server drivers get ""
// when no DSN is configured.
func (c *Config) StoreDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case "", DefaultDriver, "sqlite3":
		return c.DatabasePath()
	}
	return ""
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DatabasePath returns the path to the default sqlite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Dir, DatabaseFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// NewLogger returns a text logger writing to w.
// With debug off only errors are emitted.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelError
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
