package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all statemap configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Plot    PlotConfig    `yaml:"plot"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the polygon table.
type DataConfig struct {
	Path string `yaml:"path"`
}

// PlotConfig sizes the terminal plot, in cells.
type PlotConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Close  bool `yaml:"close"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path: "data/state-polygons-cleaned.csv",
		},
		Plot: PlotConfig{
			Width:  80,
			Height: 30,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFiles loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped; a
// file that exists but cannot be read or parsed is an error.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STATEMAP_DATA"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("STATEMAP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("STATEMAP_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate checks values a run cannot proceed without.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return errors.New("config: data.path is required")
	}
	if c.Plot.Width < 1 || c.Plot.Height < 1 {
		return fmt.Errorf("config: plot size must be positive, got %dx%d", c.Plot.Width, c.Plot.Height)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging.level %q", c.Logging.Level)
	}
	return nil
}
