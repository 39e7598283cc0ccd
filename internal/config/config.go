// Package config defines all configuration structures for the FragSAR
// service. No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	Mode            string        `mapstructure:"mode" yaml:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size" yaml:"max_body_size"`
	EnableGzip      bool          `mapstructure:"enable_gzip" yaml:"enable_gzip"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EnumerationConfig bounds the work one request may ask for.
type EnumerationConfig struct {
	DefaultLimit    int `mapstructure:"default_limit" yaml:"default_limit"`
	MaxLimit        int `mapstructure:"max_limit" yaml:"max_limit"`
	DescribeWorkers int `mapstructure:"describe_workers" yaml:"describe_workers"`
}

// CORSConfig holds cross-origin settings. The defaults allow everything.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
	// AllowWildcard lets "*.example.com" entries match any subdomain origin.
	AllowWildcard bool `mapstructure:"allow_wildcard" yaml:"allow_wildcard"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level" yaml:"level"`   // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format" yaml:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths" yaml:"output_paths"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace            string `mapstructure:"namespace" yaml:"namespace"`
	Path                 string `mapstructure:"path" yaml:"path"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics" yaml:"enable_go_metrics"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics" yaml:"enable_process_metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Enumeration EnumerationConfig `mapstructure:"enumeration" yaml:"enumeration"`
	CORS        CORSConfig        `mapstructure:"cors" yaml:"cors"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxBodySize < 0 {
		return fmt.Errorf("config: server.max_body_size must be >= 0, got %d", c.Server.MaxBodySize)
	}

	// Enumeration
	if c.Enumeration.MaxLimit < 1 {
		return fmt.Errorf("config: enumeration.max_limit must be >= 1, got %d", c.Enumeration.MaxLimit)
	}
	if c.Enumeration.DefaultLimit < 1 || c.Enumeration.DefaultLimit > c.Enumeration.MaxLimit {
		return fmt.Errorf("config: enumeration.default_limit %d is out of range [1, %d]",
			c.Enumeration.DefaultLimit, c.Enumeration.MaxLimit)
	}
	if c.Enumeration.DescribeWorkers < 1 {
		return fmt.Errorf("config: enumeration.describe_workers must be >= 1, got %d", c.Enumeration.DescribeWorkers)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	return nil
}

//Personal.AI order the ending
