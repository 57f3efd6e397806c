// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package metrics provides Prometheus instrumentation for CommerceLens.
//
// Instrumented concerns:
//   - Warehouse query performance and errors (DuckDB)
//   - Cache efficiency per tier (memory, disk)
//   - API endpoint latency and throughput
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Warehouse metrics
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warehouse_query_duration_seconds",
			Help:    "Duration of warehouse queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_query_errors_total",
			Help: "Total number of warehouse query errors",
		},
		[]string{"operation", "error_kind"},
	)

	// Cache metrics, labelled by tier ("memory", "disk")
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"tier"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"tier"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache entries evicted (expired or displaced)",
		},
		[]string{"tier"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cache entries; the disk value is refreshed by sweep and stats scans",
		},
		[]string{"tier"},
	)

	CacheSweepRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_sweep_removed_total",
			Help: "Total number of expired disk cache entries removed by sweeps",
		},
	)

	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveQuery records the duration and outcome of one warehouse query.
func ObserveQuery(operation string, start time.Time, errKind string) {
	QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if errKind != "" {
		QueryErrors.WithLabelValues(operation, errKind).Inc()
	}
}

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, path string, status int, start time.Time) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
}
