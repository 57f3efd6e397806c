// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/commercelens/commercelens/internal/logging"
	"github.com/commercelens/commercelens/internal/models"
)

// Store is the persistent tier consumed by the Manager. *DiskStore is the
// production implementation; tests substitute instrumented fakes.
type Store interface {
	Put(key string, value models.Dataset, ttl time.Duration) error
	Get(key string) (models.Dataset, bool, error)
	SweepExpired() int
	ClearAll() error
	Stats() models.DiskCacheStats
}

// CredentialsGate decides whether a warehouse fetch may run. The cache
// layer never inspects credential contents; only their validity gates the
// fetch. Cache hits are served regardless.
type CredentialsGate interface {
	Allow() bool
}

// FetchFunc produces a fresh payload on a total cache miss, typically by
// executing a warehouse query.
type FetchFunc func(ctx context.Context) (models.Dataset, error)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Store is the disk tier. Required.
	Store Store

	// Policy supplies per-category TTLs for both tiers.
	Policy TTLPolicy

	// MaxMemoryEntries bounds each in-memory category.
	MaxMemoryEntries int

	// Gate optionally gates warehouse fetches on credential validity.
	// Nil means fetches are always allowed.
	Gate CredentialsGate
}

// Manager is the single entry point through which pages obtain data. It
// orchestrates the memory tier, the disk tier, and the caller-supplied
// fetch function, writing fetched values through to both tiers.
//
// Concurrent Fetch calls that miss on the same key are coalesced: exactly
// one fetch function runs, and the other callers receive its result.
// Failures are propagated to every waiting caller and never cached.
type Manager struct {
	mem    *MemoryCache
	disk   Store
	policy TTLPolicy
	gate   CredentialsGate
	group  singleflight.Group
}

// NewManager builds a Manager and sweeps expired disk entries once, so a
// restarted process starts from a clean cache directory.
func NewManager(cfg ManagerConfig) *Manager {
	m := &Manager{
		mem:    NewMemoryCache(cfg.Policy, cfg.MaxMemoryEntries),
		disk:   cfg.Store,
		policy: cfg.Policy,
		gate:   cfg.Gate,
	}
	m.disk.SweepExpired()
	return m
}

// Fetch returns the payload for the given operation and arguments.
//
// Lookup order: memory tier, then disk tier (promoting a disk hit into
// memory), then the fetch function. A successful fetch is written through
// to both tiers before being returned. A failed fetch is returned as a
// *FetchError and nothing is cached.
func (m *Manager) Fetch(ctx context.Context, operationID string, args *Args, category Category, fetch FetchFunc) (models.Dataset, error) {
	key, err := GenerateKey(operationID, args)
	if err != nil {
		return models.Dataset{}, &FetchError{Operation: operationID, Err: err}
	}

	if ds, ok := m.mem.Get(key, category); ok {
		return ds, nil
	}

	// Coalesce concurrent misses: one flight per key, everyone else waits
	// for its result.
	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		return m.lookupOrFetch(ctx, key, category, operationID, fetch)
	})
	if err != nil {
		return models.Dataset{}, &FetchError{Operation: operationID, Err: err}
	}
	return v.(models.Dataset), nil
}

// lookupOrFetch runs inside the singleflight group: it re-checks both
// tiers (another flight may have populated them while we queued), then
// falls back to the fetch function.
func (m *Manager) lookupOrFetch(ctx context.Context, key string, category Category, operationID string, fetch FetchFunc) (models.Dataset, error) {
	if ds, ok := m.mem.Get(key, category); ok {
		return ds, nil
	}

	ds, ok, err := m.disk.Get(key)
	if err != nil {
		// Treat an unreadable disk tier as a miss: the warehouse is still
		// authoritative.
		logging.Warn().Str("operation", operationID).Err(err).Msg("disk cache read failed, falling through to fetch")
	} else if ok {
		m.mem.Set(key, category, ds)
		return ds, nil
	}

	if m.gate != nil && !m.gate.Allow() {
		return models.Dataset{}, ErrCredentialsRequired
	}

	ds, err = fetch(ctx)
	if err != nil {
		return models.Dataset{}, err
	}

	if err := m.disk.Put(key, ds, m.policy.TTL(category)); err != nil {
		// A disk write failure degrades persistence, not correctness: the
		// fresh value is still returned and memory-cached.
		logging.Warn().Str("operation", operationID).Err(err).Msg("disk cache write failed")
	}
	m.mem.Set(key, category, ds)

	return ds, nil
}

// InvalidateAll clears both tiers. Safe to call concurrently with in-flight
// Fetch calls: flights already past lookup repopulate the cache with the
// values they fetched, which are at least as fresh as what was cleared.
func (m *Manager) InvalidateAll() error {
	m.mem.Clear()
	return m.disk.ClearAll()
}

// Stats returns a combined snapshot of both tiers.
func (m *Manager) Stats() models.CacheStats {
	return models.CacheStats{
		Disk:   m.disk.Stats(),
		Memory: m.mem.Stats(),
	}
}
