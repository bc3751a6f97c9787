// Package config loads the joinform YAML configuration, applies environment
// overrides, and validates the result.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-joinform/pkg/submit"
)

// Environment variables that override file values.
const (
	EnvEndpoint = "JOINFORM_ENDPOINT"
	EnvAddr     = "JOINFORM_ADDR"
	EnvLogLevel = "JOINFORM_LOG_LEVEL"
	EnvTimeout  = "JOINFORM_TIMEOUT"
)

// Config is the application configuration.
type Config struct {
	Endpoint EndpointConfig `yaml:"endpoint"`
	Server   ServerConfig   `yaml:"server"`
	Theme    ThemeConfig    `yaml:"theme"`
	UI       UIConfig       `yaml:"ui"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EndpointConfig describes the onboarding backend.
type EndpointConfig struct {
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	// CheckContract validates every payload against the bundled OpenAPI
	// schema before it is sent.
	CheckContract bool `yaml:"check_contract"`
}

// ServerConfig contains HTTP front end settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
}

// ThemeConfig selects the HTML theme variant.
type ThemeConfig struct {
	Variant string `yaml:"variant"`
}

// UIConfig points at presentation overlays. An empty SchemaDir uses the
// bundled overlay.
type UIConfig struct {
	SchemaDir string `yaml:"schema_dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json, console
	OutputPath string `yaml:"output_path"` // stdout, stderr, or file path
}

// Default returns a configuration with defaults for every field.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:           submit.DefaultEndpoint,
			Timeout:       30 * time.Second,
			UserAgent:     "go-joinform/1.0",
			CheckContract: true,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    45 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  10 << 20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}

// Load reads path over the defaults, applies environment overrides, and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if value, ok := lookup(EnvEndpoint); ok && strings.TrimSpace(value) != "" {
		c.Endpoint.URL = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvAddr); ok && strings.TrimSpace(value) != "" {
		c.Server.Addr = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if value, ok := lookup(EnvTimeout); ok && strings.TrimSpace(value) != "" {
		timeout, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		c.Endpoint.Timeout = timeout
	}
	return nil
}

// Validate checks the configuration for values the application cannot run
// with.
func (c *Config) Validate() error {
	endpoint, err := url.Parse(c.Endpoint.URL)
	if err != nil || endpoint.Host == "" || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return fmt.Errorf("endpoint url must be an absolute http(s) URL, got %q", c.Endpoint.URL)
	}
	if c.Endpoint.Timeout < 0 {
		return errors.New("endpoint timeout must not be negative")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server addr is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return errors.New("server max upload bytes must be positive")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	return nil
}
