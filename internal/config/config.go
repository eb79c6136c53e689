package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the demo server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SecurityConfig holds the key props are signed and sealed with.
type SecurityConfig struct {
	Key string `yaml:"key"`
}

// SearchConfig tunes the debounced member search.
type SearchConfig struct {
	Debounce     time.Duration `yaml:"debounce"`
	MaxDistance  int           `yaml:"max_distance"`
	PollInterval time.Duration `yaml:"poll_interval"`
	OwnerTTL     time.Duration `yaml:"owner_ttl"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MinKeyLength is the shortest accepted security key.
const MinKeyLength = 16

// Default returns the configuration used when no file is given.
// The key is left empty; Validate rejects it until one is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Search: SearchConfig{
			Debounce:     300 * time.Millisecond,
			MaxDistance:  2,
			PollInterval: 500 * time.Millisecond,
			OwnerTTL:     10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads configuration from path over the defaults. An empty path
// yields the defaults. Environment variables (after .env loading) are
// expanded in the YAML text, and HXHOOKS_KEY fills an empty security key.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("configuration file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if cfg.Security.Key == "" {
		cfg.Security.Key = os.Getenv("HXHOOKS_KEY")
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
	if c.Metrics.Path != "" && !strings.HasPrefix(c.Metrics.Path, "/") {
		c.Metrics.Path = "/" + c.Metrics.Path
	}
}

// Validate reports every problem in c at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if len(c.Security.Key) < MinKeyLength {
		errs = append(errs, fmt.Errorf("security.key must be at least %d bytes (set it in the config file or HXHOOKS_KEY)", MinKeyLength))
	}
	if c.Search.Debounce < 0 {
		errs = append(errs, errors.New("search.debounce must not be negative"))
	}
	if c.Search.MaxDistance < 0 {
		errs = append(errs, errors.New("search.max_distance must not be negative"))
	}
	if c.Search.PollInterval <= 0 {
		errs = append(errs, errors.New("search.poll_interval must be positive"))
	}
	if c.Search.OwnerTTL <= 0 {
		errs = append(errs, errors.New("search.owner_ttl must be positive"))
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		errs = append(errs, errors.New("metrics.path is required when metrics are enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Security.Key != "" {
		out.Security.Key = "<redacted>"
	}
	return &out
}

// YAML renders c as YAML.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(data), nil
}
