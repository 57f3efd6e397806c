// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package models

// DiskCacheStats summarizes the on-disk cache tier. It is derived by an
// O(n) scan over the cache directory and never persisted.
type DiskCacheStats struct {
	TotalEntries   int     `json:"total_entries"`
	ValidEntries   int     `json:"valid_entries"`
	ExpiredEntries int     `json:"expired_entries"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	HitRate        float64 `json:"hit_rate"` // share of entries still valid, 0-100
}

// MemoryCacheStats summarizes one in-memory cache category.
type MemoryCacheStats struct {
	Category  string `json:"category"`
	Entries   int    `json:"entries"`
	Capacity  int    `json:"capacity"`
	Hits      int64  `json:"hits"`
	Misses    int64  `json:"misses"`
	Evictions int64  `json:"evictions"`
}

// CacheStats combines both cache tiers for the cache admin endpoint.
type CacheStats struct {
	Disk   DiskCacheStats     `json:"disk"`
	Memory []MemoryCacheStats `json:"memory"`
}
