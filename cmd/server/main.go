// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package main is the entry point for the CommerceLens server.
//
// CommerceLens serves e-commerce analytics reports from a DuckDB star
// schema through a cached REST API. The server initializes components
// in the following order:
//
//  1. Configuration: layered load from defaults, config file and
//     environment variables (Koanf v2)
//  2. Warehouse: DuckDB connection wrapped in a circuit breaker, or a
//     canned sample executor when WAREHOUSE_SAMPLE_DATA is set
//  3. Cache: disk store sweep, then the two-tier cache manager
//  4. Authentication: JWT or no-auth mode
//  5. HTTP server: REST API with graceful shutdown on SIGINT/SIGTERM
//
// Minimal configuration for JWT authentication:
//   - CL_SECURITY_JWT_SECRET: 32+ character secret for token signing
//   - CL_SECURITY_ADMIN_USERNAME / CL_SECURITY_ADMIN_PASSWORD
//
// Development without a warehouse:
//
//	export CL_WAREHOUSE_SAMPLE_DATA=true
//	export CL_SECURITY_AUTH_MODE=none
//	./commercelens
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/commercelens/commercelens/internal/api"
	"github.com/commercelens/commercelens/internal/auth"
	"github.com/commercelens/commercelens/internal/cache"
	"github.com/commercelens/commercelens/internal/config"
	"github.com/commercelens/commercelens/internal/dataservice"
	"github.com/commercelens/commercelens/internal/logging"
	"github.com/commercelens/commercelens/internal/warehouse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger for config errors, config is not yet available
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("warehouse_path", cfg.Warehouse.Path).
		Str("cache_dir", cfg.Cache.Directory).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("sample_data", cfg.Warehouse.SampleData).
		Msg("Configuration loaded")

	// Warehouse layer: real DuckDB connection or canned sample data.
	var (
		executor warehouse.Executor
		pinger   api.Pinger
	)
	if cfg.Warehouse.SampleData {
		executor = dataservice.NewSampleExecutor()
		logging.Info().Msg("Running in sample-data mode, warehouse disabled")
	} else {
		client, err := warehouse.New(&cfg.Warehouse)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open warehouse")
		}
		defer func() {
			if err := client.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing warehouse")
			}
		}()
		executor = client
		pinger = client
		logging.Info().Msg("Warehouse connection established")
	}

	store, err := cache.NewDiskStore(cfg.Cache.Directory)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize disk cache")
	}

	var gate cache.CredentialsGate
	if cfg.Security.CredentialsFile != "" {
		gate = auth.Gate{Provider: auth.NewServiceAccountProvider(cfg.Security.CredentialsFile)}
		logging.Info().Str("path", cfg.Security.CredentialsFile).Msg("Credential gating enabled")
	}

	cacheMgr := cache.NewManager(cache.ManagerConfig{
		Store: store,
		Policy: cache.TTLPolicy{
			Default: cfg.Cache.DefaultTTL,
			Metrics: cfg.Cache.MetricsTTL,
			Detail:  cfg.Cache.DetailTTL,
			Chart:   cfg.Cache.ChartTTL,
		},
		MaxMemoryEntries: cfg.Cache.MaxMemoryEntries,
		Gate:             gate,
	})

	dataSvc := dataservice.New(cacheMgr, executor)
	authn := auth.NewAuthenticator(&cfg.Security)
	handler := api.NewHandler(dataSvc, cacheMgr, cfg, authn, pinger)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
