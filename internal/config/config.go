package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultPrompt      = "> "
	DefaultHistorySize = 1000
)

var ErrUnknownFormat = errors.New("unknown config file format")

// Config holds all application configuration.
type Config struct {
	Session SessionConfig `toml:"session" yaml:"session"`
	Logging LogConfig     `toml:"logging" yaml:"logging"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// SessionConfig holds line reader session configuration.
type SessionConfig struct {
	Prompt          string `envconfig:"TERMLINE_PROMPT" default:"> " toml:"prompt" yaml:"prompt"`
	HistorySize     int    `envconfig:"TERMLINE_HISTORY_SIZE" default:"1000" toml:"history_size" yaml:"history_size"`
	QueueInterrupts bool   `envconfig:"TERMLINE_QUEUE_INTERRUPTS" default:"false" toml:"queue_interrupts" yaml:"queue_interrupts"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" toml:"level" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" toml:"development" yaml:"development"`
}

// MetricsConfig holds the metrics endpoint configuration. Empty Address disables it.
type MetricsConfig struct {
	Address string `envconfig:"METRICS_ADDR" toml:"address" yaml:"address"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Validate()
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFile reads a .toml, .yaml or .yml file on top of the defaults.
// Environment variables are not consulted.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Validate()
	return cfg, nil
}

// Validate normalizes values the session cannot accept.
func (c *Config) Validate() {
	if c.Session.Prompt == "" {
		c.Session.Prompt = DefaultPrompt
	}
	if c.Session.HistorySize <= 0 {
		c.Session.HistorySize = DefaultHistorySize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			Prompt:          DefaultPrompt,
			HistorySize:     DefaultHistorySize,
			QueueInterrupts: false,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
