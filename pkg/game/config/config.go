// Package config provides configuration management for dungeonbot.
//
// Config file locations (priority order):
//  1. $DUNGEONBOT_CONFIG
//  2. ./dungeonbot.yaml
//  3. ~/.config/dungeonbot/config.yaml
//
// LOG_LEVEL and ENVIRONMENT override the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColorMode controls whether the overlay uses terminal colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the dungeonbot configuration.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	// Catalog is the path of a door catalog YAML file; empty uses the built-in one.
	Catalog string `yaml:"catalog,omitempty"`

	Locale LocaleConfig `yaml:"locale"`
	Color  ColorMode    `yaml:"color"`
}

// LocaleConfig points at gettext .po files laid out as <dir>/<language>/LC_MESSAGES/<domain>.po
type LocaleConfig struct {
	Dir      string `yaml:"dir"`
	Language string `yaml:"language"`
	Domain   string `yaml:"domain"`
}

// Load finds and loads the config file, or returns defaults if none found.
// The second result is the path that was loaded, "" for defaults.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// FindConfigPath returns the first config file that exists, or ""
func FindConfigPath() string {
	if p := os.Getenv("DUNGEONBOT_CONFIG"); p != "" {
		return p
	}

	candidates := []string{"dungeonbot.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "dungeonbot", "config.yaml"))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultConfig returns the defaults used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Locale: LocaleConfig{
			Dir:      "locales",
			Language: "en_US",
			Domain:   "default",
		},
		Color: ColorAuto,
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Environment == "" {
		c.Environment = def.Environment
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Locale.Dir == "" {
		c.Locale.Dir = def.Locale.Dir
	}
	if c.Locale.Language == "" {
		c.Locale.Language = def.Locale.Language
	}
	if c.Locale.Domain == "" {
		c.Locale.Domain = def.Locale.Domain
	}
	if c.Color == "" {
		c.Color = def.Color
	}
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	return nil
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	return parseLogLevel(c.LogLevel)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
