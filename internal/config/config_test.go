// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Cache.MetricsTTL != 4*time.Hour {
		t.Errorf("Expected 4h metrics TTL, got %v", cfg.Cache.MetricsTTL)
	}
	if cfg.Cache.DefaultTTL != time.Hour {
		t.Errorf("Expected 1h default TTL, got %v", cfg.Cache.DefaultTTL)
	}
	if cfg.Cache.MaxMemoryEntries != 100 {
		t.Errorf("Expected 100 memory entries, got %d", cfg.Cache.MaxMemoryEntries)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Security.AuthMode != "jwt" {
		t.Errorf("Expected jwt auth mode, got %s", cfg.Security.AuthMode)
	}
	if cfg.Warehouse.QueryTimeout != 60*time.Second {
		t.Errorf("Expected 60s query timeout, got %v", cfg.Warehouse.QueryTimeout)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	// Default auth mode is jwt, which demands a secret and admin account.
	if _, err := Load(); err == nil {
		t.Error("Expected Load to fail without a JWT secret")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("CL_SECURITY_AUTH_MODE", "none")
	t.Setenv("CL_SERVER_PORT", "9090")
	t.Setenv("CL_CACHE_DEFAULT_TTL", "30m")
	t.Setenv("CL_CACHE_MAX_MEMORY_ENTRIES", "250")
	t.Setenv("CL_WAREHOUSE_SAMPLE_DATA", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090 from env, got %d", cfg.Server.Port)
	}
	if cfg.Cache.DefaultTTL != 30*time.Minute {
		t.Errorf("Expected 30m TTL from env, got %v", cfg.Cache.DefaultTTL)
	}
	if cfg.Cache.MaxMemoryEntries != 250 {
		t.Errorf("Expected 250 entries from env, got %d", cfg.Cache.MaxMemoryEntries)
	}
	if !cfg.Warehouse.SampleData {
		t.Error("Expected sample data mode from env")
	}
	// Untouched values keep their defaults.
	if cfg.Cache.MetricsTTL != 4*time.Hour {
		t.Errorf("Expected default metrics TTL, got %v", cfg.Cache.MetricsTTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := strings.Join([]string{
		"server:",
		"  port: 3000",
		"security:",
		"  auth_mode: none",
		"cache:",
		"  directory: " + filepath.Join(dir, "cache"),
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Expected port 3000 from file, got %d", cfg.Server.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server:\n  port: 3000\nsecurity:\n  auth_mode: none\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("CL_SERVER_PORT", "4000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Expected env to win over file, got %d", cfg.Server.Port)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CL_SERVER_PORT", "server.port"},
		{"CL_CACHE_DEFAULT_TTL", "cache.default_ttl"},
		{"CL_SECURITY_RATE_LIMIT_REQS", "security.rate_limit_reqs"},
		{"CL_WAREHOUSE_SAMPLE_DATA", "warehouse.sample_data"},
	}
	for _, tc := range tests {
		if got := envTransform(tc.in); got != tc.want {
			t.Errorf("envTransform(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Security.AuthMode = "none"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty cache dir", func(c *Config) { c.Cache.Directory = "" }},
		{"zero ttl", func(c *Config) { c.Cache.ChartTTL = 0 }},
		{"zero memory entries", func(c *Config) { c.Cache.MaxMemoryEntries = 0 }},
		{"bad auth mode", func(c *Config) { c.Security.AuthMode = "basic" }},
		{"jwt without secret", func(c *Config) { c.Security.AuthMode = "jwt" }},
		{"short jwt secret", func(c *Config) {
			c.Security.AuthMode = "jwt"
			c.Security.JWTSecret = "short"
		}},
		{"jwt without admin", func(c *Config) {
			c.Security.AuthMode = "jwt"
			c.Security.JWTSecret = strings.Repeat("s", 32)
		}},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
