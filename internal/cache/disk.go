// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/commercelens/commercelens/internal/logging"
	"github.com/commercelens/commercelens/internal/metrics"
	"github.com/commercelens/commercelens/internal/models"
)

// entryExt is the suffix of every cache entry file. Files without it
// (including in-progress ".tmp" writes) are ignored by reads and sweeps.
const entryExt = ".json"

// diskEntry is the on-disk form of one cache entry.
type diskEntry struct {
	Value      models.Dataset `json:"value"`
	Timestamp  time.Time      `json:"timestamp"`
	TTLSeconds float64        `json:"ttl_seconds"`
}

func (e diskEntry) expired(now time.Time) bool {
	return now.Sub(e.Timestamp) > time.Duration(e.TTLSeconds*float64(time.Second))
}

// DiskStore is the persistent cache tier: one JSON file per key in a single
// directory, no index. Existence is determined by directory listing.
//
// Writes are atomic (temp file + rename), so a crash mid-write never leaves
// a partially written entry behind under a live name. Concurrent sweeps and
// stats passes iterate a directory listing snapshot and tolerate entries
// vanishing underneath them, so they are safe against concurrent puts and
// gets.
//
// Per-entry I/O failures are logged and contained: a bad entry never aborts
// a sweep or stats pass, and an unreadable entry self-heals by deletion on
// next access.
type DiskStore struct {
	dir string
}

// NewDiskStore creates (if needed) the cache directory and returns a store
// scoped to it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, &StoreError{Op: "init", Err: err}
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the cache directory path.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, key+entryExt)
}

// Put serializes {value, now, ttl} and writes it atomically under key,
// overwriting any previous entry.
func (s *DiskStore) Put(key string, value models.Dataset, ttl time.Duration) error {
	entry := diskEntry{
		Value:      value,
		Timestamp:  time.Now(),
		TTLSeconds: ttl.Seconds(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StoreError{Op: "put", Key: key, Err: err}
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return &StoreError{Op: "put", Key: key, Err: err}
	}

	return nil
}

// Get reads the entry for key. Returns (value, true, nil) on a valid hit.
//
// An expired entry is treated as absent and its file is deleted (lazy
// eviction). A corrupt entry is logged, deleted, and treated as absent.
// Only unexpected I/O failures (e.g. permissions) surface as an error.
func (s *DiskStore) Get(key string) (models.Dataset, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			metrics.CacheMisses.WithLabelValues("disk").Inc()
			return models.Dataset{}, false, nil
		}
		return models.Dataset{}, false, &StoreError{Op: "get", Key: key, Err: err}
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		logging.Warn().Str("key", key).Err(err).Msg("removing corrupt cache entry")
		s.remove(key)
		metrics.CacheMisses.WithLabelValues("disk").Inc()
		return models.Dataset{}, false, nil
	}

	if entry.expired(time.Now()) {
		s.remove(key)
		metrics.CacheMisses.WithLabelValues("disk").Inc()
		metrics.CacheEvictions.WithLabelValues("disk").Inc()
		return models.Dataset{}, false, nil
	}

	metrics.CacheHits.WithLabelValues("disk").Inc()
	return entry.Value, true, nil
}

// SweepExpired scans all entries and deletes every one whose TTL has
// elapsed, returning the number removed. Unreadable entries are removed as
// well. A failure on one entry never aborts the pass.
//
// Intended to run once at startup.
func (s *DiskStore) SweepExpired() int {
	names, err := s.list()
	if err != nil {
		logging.Error().Err(err).Str("dir", s.dir).Msg("cache sweep failed to list directory")
		return 0
	}

	now := time.Now()
	removed := 0
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue // removed concurrently
			}
			logging.Warn().Str("entry", name).Err(err).Msg("cache sweep cannot read entry")
			continue
		}

		var entry diskEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			// Unreadable entries are junk: delete them too.
			if os.Remove(path) == nil {
				removed++
			}
			continue
		}

		if entry.expired(now) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		metrics.CacheSweepRemoved.Add(float64(removed))
		logging.Info().Int("removed", removed).Msg("swept expired cache entries")
	}
	metrics.CacheEntries.WithLabelValues("disk").Set(float64(len(names) - removed))
	return removed
}

// ClearAll unconditionally removes every entry, regardless of TTL state.
func (s *DiskStore) ClearAll() error {
	names, err := s.list()
	if err != nil {
		return &StoreError{Op: "clear", Err: err}
	}

	var firstErr error
	for _, name := range names {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			if firstErr == nil {
				firstErr = &StoreError{Op: "clear", Key: name, Err: err}
			}
			logging.Warn().Str("entry", name).Err(err).Msg("failed to remove cache entry")
		}
	}
	if firstErr == nil {
		metrics.CacheEntries.WithLabelValues("disk").Set(0)
	}
	return firstErr
}

// Stats enumerates all entries and classifies each as valid or expired by
// re-reading its timestamp and TTL. This is an O(n) directory scan; do not
// call it on a hot path.
func (s *DiskStore) Stats() models.DiskCacheStats {
	var st models.DiskCacheStats

	names, err := s.list()
	if err != nil {
		logging.Error().Err(err).Str("dir", s.dir).Msg("cache stats failed to list directory")
		return st
	}

	now := time.Now()
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		st.TotalEntries++
		st.TotalSizeBytes += info.Size()

		data, err := os.ReadFile(path)
		if err != nil {
			st.ExpiredEntries++
			continue
		}
		var entry diskEntry
		if err := json.Unmarshal(data, &entry); err != nil || entry.expired(now) {
			st.ExpiredEntries++
			continue
		}
		st.ValidEntries++
	}

	if st.TotalEntries > 0 {
		st.HitRate = float64(st.ValidEntries) / float64(st.TotalEntries) * 100.0
	}
	metrics.CacheEntries.WithLabelValues("disk").Set(float64(st.TotalEntries))
	return st
}

// list returns the names of all entry files currently in the directory.
func (s *DiskStore) list() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entryExt) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *DiskStore) remove(key string) {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Str("key", key).Err(err).Msg("failed to remove cache entry")
	}
}
