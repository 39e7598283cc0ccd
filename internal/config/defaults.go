// Package config provides configuration loading, defaults, and validation for
// the FragSAR service.
package config

import (
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultRequestTimeout  = 55 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodySize     = 1 << 20

	DefaultEnumerationLimit = 200
	DefaultMaxLimit         = 10000

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "fragsar"
	DefaultMetricsPath      = "/metrics"

	DefaultCORSMaxAge = 600
)

var (
	DefaultCORSOrigins = []string{"*"}
	DefaultCORSMethods = []string{"*"}
	DefaultCORSHeaders = []string{"*"}
	DefaultCORSExposed = []string{"X-Request-ID"}
)

// DefaultDescribeWorkers is the descriptor worker-pool size when unset.
func DefaultDescribeWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	cfg := &Config{
		Server:  ServerConfig{EnableGzip: true},
		Metrics: MetricsConfig{Enabled: true, EnableGoMetrics: true, EnableProcessMetrics: true},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with the default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins. Booleans cannot be
// told apart from "unset" here; Default and the loader take care of them.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}

	// ── Enumeration ───────────────────────────────────────────────────────────
	if cfg.Enumeration.MaxLimit == 0 {
		cfg.Enumeration.MaxLimit = DefaultMaxLimit
	}
	if cfg.Enumeration.DefaultLimit == 0 {
		cfg.Enumeration.DefaultLimit = DefaultEnumerationLimit
	}
	if cfg.Enumeration.DescribeWorkers == 0 {
		cfg.Enumeration.DescribeWorkers = DefaultDescribeWorkers()
	}

	// ── CORS ──────────────────────────────────────────────────────────────────
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = append([]string(nil), DefaultCORSOrigins...)
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = append([]string(nil), DefaultCORSMethods...)
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = append([]string(nil), DefaultCORSHeaders...)
	}
	if len(cfg.CORS.ExposedHeaders) == 0 {
		cfg.CORS.ExposedHeaders = append([]string(nil), DefaultCORSExposed...)
	}
	if cfg.CORS.MaxAge == 0 {
		cfg.CORS.MaxAge = DefaultCORSMaxAge
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

// setViperDefaults registers every key with v. Keys viper does not know
// about are not picked up from the environment by Unmarshal.
func setViperDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	v.SetDefault("server.enable_gzip", d.Server.EnableGzip)

	v.SetDefault("enumeration.default_limit", d.Enumeration.DefaultLimit)
	v.SetDefault("enumeration.max_limit", d.Enumeration.MaxLimit)
	v.SetDefault("enumeration.describe_workers", d.Enumeration.DescribeWorkers)

	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("cors.allowed_methods", d.CORS.AllowedMethods)
	v.SetDefault("cors.allowed_headers", d.CORS.AllowedHeaders)
	v.SetDefault("cors.exposed_headers", d.CORS.ExposedHeaders)
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", d.CORS.MaxAge)
	v.SetDefault("cors.allow_wildcard", false)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_paths", d.Log.OutputPaths)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("metrics.enable_go_metrics", d.Metrics.EnableGoMetrics)
	v.SetDefault("metrics.enable_process_metrics", d.Metrics.EnableProcessMetrics)
}

//Personal.AI order the ending
