// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package auth provides warehouse credential gating, JWT session tokens,
// and the HTTP authentication middleware.
package auth

import (
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/commercelens/commercelens/internal/logging"
)

// Credentials is an opaque handle to active warehouse credentials. The
// cache layer never inspects its contents; only presence and validity gate
// whether a warehouse fetch may run.
type Credentials struct {
	Source string // "service_account" or "static"
}

// CredentialsProvider reports whether warehouse credentials are currently
// available and valid.
type CredentialsProvider interface {
	// ActiveCredentials returns the active credentials, if any.
	ActiveCredentials() (Credentials, bool)

	// IsValid reports whether the given credentials are still usable.
	IsValid(Credentials) bool
}

// Allow implements the cache manager's fetch gate on top of any provider.
type Gate struct {
	Provider CredentialsProvider
}

// Allow reports whether a warehouse fetch may run now.
func (g Gate) Allow() bool {
	creds, ok := g.Provider.ActiveCredentials()
	return ok && g.Provider.IsValid(creds)
}

// AlwaysValid is the provider used when no credential gating is configured
// (e.g. a local DuckDB file needs no credentials).
type AlwaysValid struct{}

func (AlwaysValid) ActiveCredentials() (Credentials, bool) { return Credentials{Source: "static"}, true }
func (AlwaysValid) IsValid(Credentials) bool               { return true }

// serviceAccountKey is the minimal shape a service-account file must have.
type serviceAccountKey struct {
	Type       string `json:"type"`
	ProjectID  string `json:"project_id"`
	PrivateKey string `json:"private_key"`
}

// ServiceAccountProvider sources credentials from a service-account JSON
// file on disk. The file is re-checked periodically so that rotating or
// deleting it takes effect without a restart.
type ServiceAccountProvider struct {
	path string

	mu        sync.Mutex
	checkedAt time.Time
	valid     bool
}

// checkInterval bounds how often the file is re-read.
const checkInterval = 30 * time.Second

// NewServiceAccountProvider creates a provider for the given key file.
func NewServiceAccountProvider(path string) *ServiceAccountProvider {
	return &ServiceAccountProvider{path: path}
}

func (p *ServiceAccountProvider) ActiveCredentials() (Credentials, bool) {
	if !p.check() {
		return Credentials{}, false
	}
	return Credentials{Source: "service_account"}, true
}

func (p *ServiceAccountProvider) IsValid(c Credentials) bool {
	return c.Source == "service_account" && p.check()
}

func (p *ServiceAccountProvider) check() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.checkedAt) < checkInterval {
		return p.valid
	}

	p.valid = p.readKeyFile()
	p.checkedAt = time.Now()
	return p.valid
}

func (p *ServiceAccountProvider) readKeyFile() bool {
	data, err := os.ReadFile(p.path)
	if err != nil {
		logging.Warn().Str("path", p.path).Err(err).Msg("service account file unavailable")
		return false
	}

	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		logging.Warn().Str("path", p.path).Err(err).Msg("service account file is not valid JSON")
		return false
	}
	if key.Type != "service_account" || key.ProjectID == "" || key.PrivateKey == "" {
		logging.Warn().Str("path", p.path).Msg("service account file is missing required fields")
		return false
	}
	return true
}
