// Package config loads the CLI configuration: environment defaults
// (ONBOARD_*), optionally overridden by a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/reoring/onboarding/i18n"
)

// ErrInvalidConfig reports a configuration that fails Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	ReferenceData string `yaml:"reference_data"`
	Language      string `yaml:"language"`
	Timezone      string `yaml:"timezone"`
	Output        string `yaml:"output"`
	Log           Log    `yaml:"log"`
}

type Log struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// LoadDotEnv loads a .env file into the environment if one exists. Variables
// already set are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env file: %w", err)
	}
	return nil
}

// Load builds the configuration from the environment and, when path is not
// empty, the YAML file at path.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ReferenceData: getEnv("ONBOARD_REFERENCE_DATA", ""),
		Language:      getEnv("ONBOARD_LANGUAGE", "en"),
		Timezone:      getEnv("ONBOARD_TIMEZONE", ""),
		Output:        getEnv("ONBOARD_OUTPUT", ""),
		Log: Log{
			Format: getEnv("ONBOARD_LOG_FORMAT", "text"),
			Level:  getEnv("ONBOARD_LOG_LEVEL", "info"),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(i18n.Languages(), c.Language) {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidConfig, c.Language)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return lvl, nil
}

// Location resolves the timezone; empty means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
