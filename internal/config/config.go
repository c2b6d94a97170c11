// Package config loads the optional YAML file read by the formkit CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/visibility"
)

// Config mirrors the CLI configuration file.
type Config struct {
	Locale          string  `yaml:"locale"`
	Timezone        string  `yaml:"timezone"`
	RevealThreshold float64 `yaml:"reveal_threshold"`
	MaxImageBytes   int64   `yaml:"max_image_bytes"`
	Log             Log     `yaml:"log"`
}

// Log configures the rotating log file. An empty File logs to stderr.
type Log struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Locale:          i18n.DefaultLocale,
		Timezone:        "UTC",
		RevealThreshold: visibility.DefaultThreshold,
		MaxImageBytes:   validation.DefaultImagePolicy.MaxBytes,
		Log: Log{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports values the CLI cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.RevealThreshold < 0 || c.RevealThreshold > 1 {
		errs = append(errs, fmt.Errorf("config: reveal_threshold %v outside [0, 1]", c.RevealThreshold))
	}
	if c.MaxImageBytes < 0 {
		errs = append(errs, errors.New("config: max_image_bytes must not be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves Timezone. An empty value means UTC.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", name, err)
	}
	return loc, nil
}
