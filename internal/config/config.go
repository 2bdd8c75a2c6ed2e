package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvBaseURL   = "CARTLOC_BASE_URL"
	EnvTimeout   = "CARTLOC_TIMEOUT"
	EnvLogLevel  = "CARTLOC_LOG_LEVEL"
	EnvUserAgent = "CARTLOC_USER_AGENT"
)

type Config struct {
	Storefront StorefrontConfig `yaml:"storefront"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type StorefrontConfig struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func DefaultConfig() *Config {
	return &Config{
		Storefront: StorefrontConfig{
			Timeout:   "10s",
			UserAgent: "cartloc/1.0",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file is not an error; an empty path skips the file.
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
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process
// environment without overwriting variables that are already set.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("godotenv.Load: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Storefront.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.Storefront.Timeout = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		c.Storefront.UserAgent = v
	}
}

// GetTimeout returns the storefront request timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Storefront.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

func (c *Config) Validate() error {
	if c.Storefront.BaseURL == "" {
		return fmt.Errorf("storefront.base_url is empty")
	}

	u, err := url.Parse(c.Storefront.BaseURL)
	if err != nil {
		return fmt.Errorf("storefront.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("storefront.base_url[%s] must be http or https", c.Storefront.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("storefront.base_url[%s] has no host", c.Storefront.BaseURL)
	}

	return nil
}
