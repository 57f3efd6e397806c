// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package cache

import (
	"sync"
	"time"

	"github.com/commercelens/commercelens/internal/metrics"
	"github.com/commercelens/commercelens/internal/models"
)

// MemoryCache is the fast, process-lifetime cache tier. It is partitioned
// by Category; each category carries its own TTL and an independent LRU
// capacity bound, so a burst of detail queries cannot displace long-lived
// metrics entries.
//
// Expiry is lazy: entries are checked on access, not swept in the
// background. The capacity bound evicts the least recently used entry once
// a category exceeds it.
//
// Safe for concurrent use.
type MemoryCache struct {
	policy TTLPolicy
	shards map[Category]*lruShard
}

// NewMemoryCache creates a memory cache with the given TTL policy and
// per-category capacity.
func NewMemoryCache(policy TTLPolicy, capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = 100
	}
	shards := make(map[Category]*lruShard, len(Categories))
	for _, cat := range Categories {
		shards[cat] = newLRUShard(string(cat), capacity)
	}
	return &MemoryCache{policy: policy, shards: shards}
}

func (m *MemoryCache) shard(category Category) *lruShard {
	if s, ok := m.shards[category]; ok {
		return s
	}
	return m.shards[CategoryDefault]
}

// Get returns the cached value for key if present and unexpired.
func (m *MemoryCache) Get(key string, category Category) (models.Dataset, bool) {
	return m.shard(category).get(key)
}

// Set stores value under key with the category's TTL. The TTL is resolved
// from the policy now; later policy edits do not affect this entry.
func (m *MemoryCache) Set(key string, category Category, value models.Dataset) {
	m.shard(category).set(key, value, m.policy.TTL(category))
}

// GetOrCompute returns the cached value for key, or invokes compute exactly
// once, stores the result under the category's TTL, and returns it.
// Concurrent callers for the same key within a TTL window observe the same
// value; coalescing of concurrent computes is the Manager's job.
func (m *MemoryCache) GetOrCompute(key string, category Category, compute func() (models.Dataset, error)) (models.Dataset, error) {
	if ds, ok := m.Get(key, category); ok {
		return ds, nil
	}
	ds, err := compute()
	if err != nil {
		return models.Dataset{}, err
	}
	m.Set(key, category, ds)
	return ds, nil
}

// Clear removes every entry from every category.
func (m *MemoryCache) Clear() {
	for _, s := range m.shards {
		s.clear()
	}
}

// Stats returns a snapshot of every category's counters.
func (m *MemoryCache) Stats() []models.MemoryCacheStats {
	out := make([]models.MemoryCacheStats, 0, len(Categories))
	for _, cat := range Categories {
		out = append(out, m.shards[cat].stats())
	}
	return out
}

// lruShard is a thread-safe LRU cache with per-entry TTL, using a
// doubly-linked list for recency order and a map for O(1) lookup.
// head.next is the most recently used, tail.prev the least.
type lruShard struct {
	mu sync.Mutex

	name     string
	capacity int
	items    map[string]*lruEntry
	head     *lruEntry
	tail     *lruEntry

	hits      int64
	misses    int64
	evictions int64
}

type lruEntry struct {
	key       string
	value     models.Dataset
	expiresAt time.Time
	prev      *lruEntry
	next      *lruEntry
}

func newLRUShard(name string, capacity int) *lruShard {
	s := &lruShard{
		name:     name,
		capacity: capacity,
		items:    make(map[string]*lruEntry, capacity),
		head:     &lruEntry{},
		tail:     &lruEntry{},
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

func (s *lruShard) get(key string) (models.Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		s.misses++
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return models.Dataset{}, false
	}

	if time.Now().After(e.expiresAt) {
		s.unlink(e)
		delete(s.items, key)
		s.misses++
		s.evictions++
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		metrics.CacheEvictions.WithLabelValues("memory").Inc()
		metrics.CacheEntries.WithLabelValues("memory").Dec()
		return models.Dataset{}, false
	}

	s.moveToFront(e)
	s.hits++
	metrics.CacheHits.WithLabelValues("memory").Inc()
	return e.value, true
}

func (s *lruShard) set(key string, value models.Dataset, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(ttl)
		s.moveToFront(e)
		return
	}

	e := &lruEntry{key: key, value: value, expiresAt: time.Now().Add(ttl)}
	s.items[key] = e
	s.pushFront(e)
	metrics.CacheEntries.WithLabelValues("memory").Inc()

	if len(s.items) > s.capacity {
		lru := s.tail.prev
		s.unlink(lru)
		delete(s.items, lru.key)
		s.evictions++
		metrics.CacheEvictions.WithLabelValues("memory").Inc()
		metrics.CacheEntries.WithLabelValues("memory").Dec()
	}
}

func (s *lruShard) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictions += int64(len(s.items))
	metrics.CacheEntries.WithLabelValues("memory").Sub(float64(len(s.items)))
	s.items = make(map[string]*lruEntry, s.capacity)
	s.head.next = s.tail
	s.tail.prev = s.head
}

func (s *lruShard) stats() models.MemoryCacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.MemoryCacheStats{
		Category:  s.name,
		Entries:   len(s.items),
		Capacity:  s.capacity,
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
	}
}

func (s *lruShard) pushFront(e *lruEntry) {
	e.prev = s.head
	e.next = s.head.next
	s.head.next.prev = e
	s.head.next = e
}

func (s *lruShard) unlink(e *lruEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

func (s *lruShard) moveToFront(e *lruEntry) {
	s.unlink(e)
	s.pushFront(e)
}
