// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package config loads and validates the CommerceLens configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//  1. Built-in defaults
//  2. Config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (CL_ prefix, e.g. CL_CACHE_DIRECTORY)
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration object.
type Config struct {
	Warehouse WarehouseConfig `koanf:"warehouse"`
	Cache     CacheConfig     `koanf:"cache"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Export    ExportConfig    `koanf:"export"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// WarehouseConfig controls the DuckDB warehouse connection.
type WarehouseConfig struct {
	// Path is the DuckDB database file. ":memory:" opens an in-memory
	// database, used by the sample-data mode and tests.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// QueryTimeout bounds every warehouse query. A query that exceeds it
	// fails with a timeout error; the result is never cached.
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// SampleData serves canned datasets instead of querying the warehouse.
	// Intended for development without warehouse credentials.
	SampleData bool `koanf:"sample_data"`

	// Breaker settings for the circuit breaker around the executor.
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerOpenTimeout      time.Duration `koanf:"breaker_open_timeout"`
}

// CacheConfig controls both cache tiers.
type CacheConfig struct {
	// Directory holds the disk cache, one file per key.
	Directory string `koanf:"directory"`

	// DefaultTTL applies to operations without a category override.
	DefaultTTL time.Duration `koanf:"default_ttl"`

	// MetricsTTL applies to aggregated metrics (longest-lived).
	MetricsTTL time.Duration `koanf:"metrics_ttl"`

	// DetailTTL applies to detail/table views.
	DetailTTL time.Duration `koanf:"detail_ttl"`

	// ChartTTL applies to chart-shaped results.
	ChartTTL time.Duration `koanf:"chart_ttl"`

	// MaxMemoryEntries bounds each in-memory category (LRU eviction).
	MaxMemoryEntries int `koanf:"max_memory_entries"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig controls authentication and rate limiting.
type SecurityConfig struct {
	// AuthMode is "jwt" or "none". "none" disables authentication and is
	// only intended for development.
	AuthMode string `koanf:"auth_mode"`

	// JWTSecret signs session tokens. Required when AuthMode is "jwt".
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout bounds token validity.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	AdminUsername string `koanf:"admin_username"`
	// AdminPassword may be plaintext or a bcrypt hash ($2... prefix).
	AdminPassword string `koanf:"admin_password"`

	// CredentialsFile points at a warehouse service-account file. When set,
	// its presence and well-formedness gate warehouse fetches.
	CredentialsFile string `koanf:"credentials_file"`

	// RateLimitReqs requests allowed per RateLimitWindow per client.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// ExportConfig controls dataset exports.
type ExportConfig struct {
	// MaxRows caps the number of rows in one export file.
	MaxRows int `koanf:"max_rows"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks the configuration for inconsistencies that would
// only surface later at runtime.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Directory == "" {
		return fmt.Errorf("cache.directory must not be empty")
	}
	for name, ttl := range map[string]time.Duration{
		"cache.default_ttl": c.Cache.DefaultTTL,
		"cache.metrics_ttl": c.Cache.MetricsTTL,
		"cache.detail_ttl":  c.Cache.DetailTTL,
		"cache.chart_ttl":   c.Cache.ChartTTL,
	} {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Cache.MaxMemoryEntries <= 0 {
		return fmt.Errorf("cache.max_memory_entries must be positive, got %d", c.Cache.MaxMemoryEntries)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "none":
		return nil
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters when auth_mode is jwt")
		}
		if c.Security.AdminUsername == "" || c.Security.AdminPassword == "" {
			return fmt.Errorf("security.admin_username and security.admin_password are required when auth_mode is jwt")
		}
		return nil
	default:
		return fmt.Errorf("security.auth_mode must be \"jwt\" or \"none\", got %q", c.Security.AuthMode)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not valid (json or console)", c.Logging.Format)
	}
	return nil
}
