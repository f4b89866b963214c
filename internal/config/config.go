// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all learnpath configuration.
type Config struct {
	Backend Backend `yaml:"backend"`
	Plan    Plan    `yaml:"plan"`
	Log     Log     `yaml:"log"`
}

// Backend holds learning-plan service settings.
type Backend struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // 0 disables the client-side timeout
}

// Plan holds settings for the non-interactive plan command.
type Plan struct {
	Concurrency int `yaml:"concurrency"` // Parallel resource lookups
}

// Log holds diagnostic logging settings.
type Log struct {
	File string `yaml:"file"` // Empty discards logs while the TUI owns the terminal
}

// DefaultConfig points at a local backend with a 30s request timeout.
func DefaultConfig() Config {
	return Config{
		Backend: Backend{
			URL:     "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Plan: Plan{
			Concurrency: 4,
		},
	}
}

// Load reads one config file over the defaults. A missing or empty file
// yields the defaults.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered applies each file over the defaults in order, so later paths
// win. Only keys present in a file override earlier values; missing files
// are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	for _, path := range paths {
		var layer rawConfig
		ok, err := decodeFile(path, &layer)
		if err != nil {
			return nil, err
		}
		if ok {
			cfg.merge(&layer)
		}
	}
	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("config: backend.url cannot be empty")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("config: backend.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: backend.url must be an http(s) URL, got %q", c.Backend.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("config: backend.url has no host: %q", c.Backend.URL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("config: backend.timeout must be non-negative, got %v", c.Backend.Timeout)
	}
	if c.Plan.Concurrency < 1 {
		return fmt.Errorf("config: plan.concurrency must be at least 1, got %d", c.Plan.Concurrency)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: LEARNPATH_BACKEND_URL, LEARNPATH_TIMEOUT,
// LEARNPATH_CONCURRENCY, LEARNPATH_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("LEARNPATH_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("LEARNPATH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid LEARNPATH_TIMEOUT %q: %w", v, err)
		}
		c.Backend.Timeout = d
	}
	if v := os.Getenv("LEARNPATH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid LEARNPATH_CONCURRENCY %q: %w", v, err)
		}
		c.Plan.Concurrency = n
	}
	if v := os.Getenv("LEARNPATH_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig is one file layer; nil pointers mark keys the file leaves unset.
type rawConfig struct {
	Backend *rawBackend `yaml:"backend"`
	Plan    *rawPlan    `yaml:"plan"`
	Log     *rawLog     `yaml:"log"`
}

type rawBackend struct {
	URL     *string        `yaml:"url"`
	Timeout *time.Duration `yaml:"timeout"`
}

type rawPlan struct {
	Concurrency *int `yaml:"concurrency"`
}

type rawLog struct {
	File *string `yaml:"file"`
}

// decodeFile strictly decodes the YAML at path into v. It reports false
// when the file is absent, empty, or holds only comments.
func decodeFile(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("config: reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	switch err := dec.Decode(v); {
	case errors.Is(err, io.EOF):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return true, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Backend != nil {
		if layer.Backend.URL != nil {
			c.Backend.URL = *layer.Backend.URL
		}
		if layer.Backend.Timeout != nil {
			c.Backend.Timeout = *layer.Backend.Timeout
		}
	}
	if layer.Plan != nil {
		if layer.Plan.Concurrency != nil {
			c.Plan.Concurrency = *layer.Plan.Concurrency
		}
	}
	if layer.Log != nil {
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
