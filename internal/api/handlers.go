// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/commercelens/commercelens/internal/auth"
	"github.com/commercelens/commercelens/internal/cache"
	"github.com/commercelens/commercelens/internal/config"
	"github.com/commercelens/commercelens/internal/dataservice"
	"github.com/commercelens/commercelens/internal/models"
	"github.com/commercelens/commercelens/internal/warehouse"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Pinger reports warehouse reachability for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor (this file)
//   - handlers_health.go: Health and readiness endpoints
//   - handlers_auth.go: Login endpoint
//   - handlers_data.go: Report data endpoints
//   - handlers_export.go: Export endpoints
//   - handlers_cache.go: Cache administration endpoints
type Handler struct {
	data       *dataservice.Service
	cache      *cache.Manager
	config     *config.Config
	auth       *auth.Authenticator
	pinger     Pinger
	sampleMode bool
	startTime  time.Time
}

// NewHandler creates a new API handler. pinger may be nil when running
// in sample-data mode.
func NewHandler(data *dataservice.Service, cacheMgr *cache.Manager, cfg *config.Config, authn *auth.Authenticator, pinger Pinger) *Handler {
	return &Handler{
		data:       data,
		cache:      cacheMgr,
		config:     cfg,
		auth:       authn,
		pinger:     pinger,
		sampleMode: cfg.Warehouse.SampleData,
		startTime:  time.Now(),
	}
}

// respondFetchError maps data-layer failures to HTTP status codes.
func respondFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, cache.ErrCredentialsRequired) {
		respondError(w, http.StatusServiceUnavailable, "CREDENTIALS_REQUIRED",
			"Warehouse credentials are missing or invalid", err)
		return
	}

	var qerr *warehouse.QueryError
	if errors.As(err, &qerr) {
		switch qerr.Kind {
		case warehouse.KindConnection:
			respondError(w, http.StatusServiceUnavailable, "WAREHOUSE_UNAVAILABLE",
				"Warehouse is unreachable", err)
		case warehouse.KindTimeout:
			respondError(w, http.StatusGatewayTimeout, "QUERY_TIMEOUT",
				"Query exceeded the configured timeout", err)
		case warehouse.KindAccessDenied:
			respondError(w, http.StatusForbidden, "ACCESS_DENIED",
				"Warehouse denied access for this query", err)
		default:
			respondError(w, http.StatusInternalServerError, "QUERY_FAILED",
				"Query execution failed", err)
		}
		return
	}

	respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
		"Failed to retrieve data", err)
}

// parseDateRange reads start_date, end_date and days query parameters.
// When both dates are absent the trailing 90-day window applies, so a plain
// request always binds real timestamps to date-ranged queries.
func parseDateRange(r *http.Request) (dataservice.DateRange, *models.APIError) {
	rng := dataservice.DateRange{
		Start: r.URL.Query().Get("start_date"),
		End:   r.URL.Query().Get("end_date"),
		Days:  getIntParam(r, "days", 0),
	}

	def := dataservice.DefaultRange()
	if rng.Start == "" && rng.End == "" {
		rng.Start, rng.End = def.Start, def.End
	}
	if rng.Days <= 0 {
		rng.Days = def.Days
	}

	if err := rng.Validate(); err != nil {
		return rng, &models.APIError{
			Code:    "INVALID_DATE_RANGE",
			Message: err.Error(),
		}
	}
	return rng, nil
}
