// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package api

import (
	"net/http"
	"time"

	"github.com/commercelens/commercelens/internal/logging"
	"github.com/commercelens/commercelens/internal/models"
)

// CacheStats reports entry counts and hit rates for both cache tiers.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.cache.Stats()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     stats,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// CacheInvalidate clears both cache tiers. Admin only.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.InvalidateAll(); err != nil {
		respondError(w, http.StatusInternalServerError, "INVALIDATE_FAILED",
			"Failed to clear cache", err)
		return
	}

	logging.Info().Msg("Cache invalidated via API")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"message": "cache cleared"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
