// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/commercelens/commercelens/internal/models"
)

// Health reports overall service status including warehouse connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.sampleMode
	if !connected && h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		connected = h.pinger.Ping(ctx) == nil
	}

	status := "healthy"
	if !connected && !h.sampleMode {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:             status,
			Version:            Version,
			WarehouseConnected: connected,
			SampleMode:         h.sampleMode,
			Uptime:             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive is the liveness probe. It always succeeds while the
// process is able to serve requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// HealthReady is the readiness probe. It fails when the warehouse is
// unreachable, unless running in sample-data mode.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.sampleMode && h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			respondError(w, http.StatusServiceUnavailable, "NOT_READY",
				"Warehouse is unreachable", err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
