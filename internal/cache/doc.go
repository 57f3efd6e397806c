// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package cache implements the two-tier query-result cache that sits between
// the API layer and the warehouse.
//
// Tiers:
//   - Memory: process-lifetime LRU cache, partitioned by data category
//     (metrics / detail / chart / default), each category with its own TTL.
//   - Disk: directory of one JSON file per cache key, holding
//     {value, timestamp, ttl}. Survives process restarts.
//
// The Manager orchestrates lookups (memory, then disk, then the supplied
// fetch function), writes fetched values through to both tiers, coalesces
// concurrent misses on the same key via singleflight, and never caches
// failures.
//
// Cache keys are content hashes over an operation identifier plus its
// arguments; see GenerateKey.
package cache
