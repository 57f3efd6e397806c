// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package cache

import "time"

// Category partitions cached operations by refresh cadence. Every cacheable
// operation declares exactly one category; the category fixes the TTL at
// write time.
type Category string

const (
	// CategoryMetrics is for aggregated dashboard metrics (longest TTL).
	CategoryMetrics Category = "metrics"

	// CategoryDetail is for detail/table views.
	CategoryDetail Category = "detail"

	// CategoryChart is for chart-shaped results.
	CategoryChart Category = "chart"

	// CategoryDefault is for operations without a specific category.
	CategoryDefault Category = "default"
)

// Categories lists all known categories.
var Categories = []Category{CategoryMetrics, CategoryDetail, CategoryChart, CategoryDefault}

// TTLPolicy maps each category to a time-to-live. The effective TTL of an
// entry is fixed when the entry is written; editing the policy afterwards
// does not change entries already cached.
type TTLPolicy struct {
	Default time.Duration
	Metrics time.Duration
	Detail  time.Duration
	Chart   time.Duration
}

// DefaultTTLPolicy mirrors the production refresh cadence: metrics refresh
// four-hourly, everything else hourly.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Default: 1 * time.Hour,
		Metrics: 4 * time.Hour,
		Detail:  1 * time.Hour,
		Chart:   1 * time.Hour,
	}
}

// TTL returns the duration configured for the category. Unknown categories
// fall back to the default TTL.
func (p TTLPolicy) TTL(c Category) time.Duration {
	switch c {
	case CategoryMetrics:
		return p.Metrics
	case CategoryDetail:
		return p.Detail
	case CategoryChart:
		return p.Chart
	default:
		return p.Default
	}
}
