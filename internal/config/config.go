// Package config loads the backoffice configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvAPIURL   = "BACKOFFICE_API_URL"
	EnvLogLevel = "BACKOFFICE_LOG_LEVEL"
	EnvConfig   = "BACKOFFICE_CONFIG"
)

// DefaultAPIURL is used when neither the file nor the environment names a server.
const DefaultAPIURL = "http://localhost:3000/api/v1"

// Config holds all user-tunable settings.
type Config struct {
	APIURL string `yaml:"api_url"`
	// Timeout is a duration string such as "30s".
	Timeout           string  `yaml:"timeout"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	PageSize            int    `yaml:"page_size"`
	CloudinaryUploadURL string `yaml:"cloudinary_upload_url,omitempty"`

	CacheTTL  string `yaml:"cache_ttl"`
	CacheSize int    `yaml:"cache_size"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		APIURL:            DefaultAPIURL,
		Timeout:           "30s",
		RequestsPerSecond: 0,
		Burst:             10,
		LogLevel:          "info",
		PageSize:          50,
		CacheTTL:          "1m",
		CacheSize:         128,
	}
}

// Dir returns ~/.backoffice.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".backoffice"), nil
}

// DefaultPath returns the config file location, honouring BACKOFFICE_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if u := os.Getenv(EnvAPIURL); u != "" {
		c.APIURL = u
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.LogLevel = lvl
	}
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("config: api_url is empty")
	}
	if _, err := parseDuration(c.Timeout); err != nil {
		return fmt.Errorf("config: timeout: %w", err)
	}
	if _, err := parseDuration(c.CacheTTL); err != nil {
		return fmt.Errorf("config: cache_ttl: %w", err)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config: requests_per_second must be >= 0")
	}
	if c.PageSize < 0 {
		return fmt.Errorf("config: page_size must be >= 0")
	}
	return nil
}

// GetTimeout returns the request timeout.
func (c *Config) GetTimeout() time.Duration {
	d, err := parseDuration(c.Timeout)
	if err != nil || d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetCacheTTL returns the list cache lifetime. Zero disables expiry.
func (c *Config) GetCacheTTL() time.Duration {
	d, _ := parseDuration(c.CacheTTL) //nolint:errcheck // validated on load
	return d
}

// GetPageSize returns the list page size, defaulting to 50.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return 50
	}
	return c.PageSize
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}
