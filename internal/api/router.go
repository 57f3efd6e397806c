// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package api provides HTTP routing and request handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/commercelens/commercelens/internal/auth"
	"github.com/commercelens/commercelens/internal/middleware"
)

// NewRouter wires all routes and the global middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(
		h.config.Security.RateLimitReqs,
		h.config.Security.RateLimitWindow,
	)

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Prometheus)

	// Health endpoints stay unauthenticated and unthrottled so probes
	// keep working when the rate limit is exhausted.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/login", h.Login)
	})

	// Data, export and cache endpoints require authentication when
	// auth_mode is jwt.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(h.auth.Middleware)

		r.Get("/reports", h.Reports)
		r.Get("/data/{area}/{report}", h.Report)
		r.Get("/export/{area}/{report}", h.Export)

		r.Route("/cache", func(r chi.Router) {
			r.Get("/stats", h.CacheStats)
			r.With(auth.RequireRole(auth.RoleAdmin)).Post("/invalidate", h.CacheInvalidate)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
