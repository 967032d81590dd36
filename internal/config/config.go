// ABOUTME: Configuration loading and parsing for banca-console
// ABOUTME: Supports YAML or TOML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the complete banca-console configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	API       APIConfig       `yaml:"api" toml:"api"`
	Session   SessionConfig   `yaml:"session" toml:"session"`
	Audit     AuditConfig     `yaml:"audit" toml:"audit"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
}

// ServerConfig holds the console listen address
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr" toml:"http_addr"`
}

// APIConfig points at the banking REST API
type APIConfig struct {
	BaseURL string        `yaml:"base_url" toml:"base_url"`
	Timeout time.Duration `yaml:"-" toml:"-"`

	TimeoutRaw string `yaml:"timeout" toml:"timeout"`
}

// SessionConfig bounds the per-browser workspaces kept in memory
type SessionConfig struct {
	TTL         time.Duration `yaml:"-" toml:"-"`
	MaxSessions int           `yaml:"max_sessions" toml:"max_sessions"`

	TTLRaw string `yaml:"ttl" toml:"ttl"`
}

// AuditConfig holds the audit journal location. An empty path disables it.
type AuditConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// TelemetryConfig toggles OpenTelemetry export. Exporter endpoints come from
// the standard OTEL_* environment variables.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" toml:"enabled"`
	ServiceName string `yaml:"service_name" toml:"service_name"`
}

// Defaults applied when a field is left empty.
const (
	DefaultHTTPAddr    = "localhost:4200"
	DefaultBaseURL     = "http://localhost:8080/api"
	DefaultSessionTTL  = 12 * time.Hour
	DefaultMaxSessions = 1000
	DefaultServiceName = "banca-console"
)

// Default returns a configuration usable without a file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Files ending in .toml are parsed as TOML, anything else as YAML.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expandedData, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.Audit.Path = expandHome(cfg.Audit.Path)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = DefaultSessionTTL
	}
	if c.Session.MaxSessions == 0 {
		c.Session.MaxSessions = DefaultMaxSessions
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = DefaultServiceName
	}
}

// Validate checks that all configuration fields are valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Session.MaxSessions < 1 {
		return fmt.Errorf("session.max_sessions must be at least 1")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not text or json", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.API.TimeoutRaw != "" {
		cfg.API.Timeout, err = time.ParseDuration(cfg.API.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing api.timeout %q: %w", cfg.API.TimeoutRaw, err)
		}
	}

	if cfg.Session.TTLRaw != "" {
		cfg.Session.TTL, err = time.ParseDuration(cfg.Session.TTLRaw)
		if err != nil {
			return fmt.Errorf("parsing session.ttl %q: %w", cfg.Session.TTLRaw, err)
		}
	}

	return nil
}
