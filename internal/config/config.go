// Package config loads shelf settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "shelf"

// DefaultAdminEmail is the account that gets admin rights unless configured otherwise.
const DefaultAdminEmail = "admin@universe.com"

// Config holds runtime settings.
type Config struct {
	// StateDir holds the catalog and account files (default: XDG_STATE_HOME/shelf).
	StateDir string `yaml:"state_dir"`

	// AdminEmail is the email address whose account may manage content.
	AdminEmail string `yaml:"admin_email"`

	// LogLevel is one of debug, info, warn, error (default: warn).
	LogLevel string `yaml:"log_level"`

	// MinChapterLen and ChunkSize tune chapter segmentation (0 = defaults).
	MinChapterLen int `yaml:"min_chapter_len"`
	ChunkSize     int `yaml:"chunk_size"`

	// WPM is the reading speed used for chapter time estimates.
	WPM int `yaml:"wpm"`
}

// DefaultPath returns XDG_CONFIG_HOME/shelf/config.yaml or ~/.config/shelf/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// Load reads path (DefaultPath when empty), applies SHELF_* environment
// overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.defaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SHELF_STATE_DIR"); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv("SHELF_ADMIN_EMAIL"); v != "" {
		c.AdminEmail = v
	}
	if v := os.Getenv("SHELF_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) defaults() {
	if c.StateDir == "" {
		c.StateDir = defaultStateDir()
	}
	if c.AdminEmail == "" {
		c.AdminEmail = DefaultAdminEmail
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.WPM <= 0 {
		c.WPM = 250
	}
}

// defaultStateDir returns XDG_STATE_HOME/shelf or ~/.local/state/shelf
func defaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}

// Level parses LogLevel, falling back to warn.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return l
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
