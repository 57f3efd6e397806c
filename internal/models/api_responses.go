// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package models

import "time"

// APIResponse is the standard envelope for all JSON API responses.
//
// Fields:
//   - Status: "success" or "error"
//   - Data: response payload (nil on error)
//   - Metadata: timing and cache observability data
//   - Error: error details, present only when Status is "error"
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`

	// RowCount is the number of rows in a Dataset payload.
	RowCount int `json:"row_count,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthStatus reports overall service health.
type HealthStatus struct {
	Status             string  `json:"status"` // "healthy" or "degraded"
	Version            string  `json:"version"`
	WarehouseConnected bool    `json:"warehouse_connected"`
	SampleMode         bool    `json:"sample_mode"`
	Uptime             float64 `json:"uptime_seconds"`
}
