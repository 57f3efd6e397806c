// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/commercelens/commercelens/internal/auth"
	"github.com/commercelens/commercelens/internal/logging"
	"github.com/commercelens/commercelens/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login authenticates a user and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		respondError(w, http.StatusNotFound, "AUTH_DISABLED",
			"Authentication is not enabled", nil)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"Request body must be valid JSON", err)
		return
	}

	if !h.auth.CheckPassword(req.Username, req.Password) {
		logging.Warn().Str("username", req.Username).Msg("Failed login attempt")
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS",
			"Invalid username or password", nil)
		return
	}

	token, expiresAt, err := h.auth.Tokens().Issue(req.Username, auth.RoleAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "TOKEN_ERROR",
			"Failed to issue token", err)
		return
	}

	logging.Info().Str("username", req.Username).Msg("User logged in")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: loginResponse{
			Token:     token,
			Role:      auth.RoleAdmin,
			ExpiresAt: expiresAt,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
