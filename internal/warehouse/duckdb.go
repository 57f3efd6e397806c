// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/sony/gobreaker/v2"

	"github.com/commercelens/commercelens/internal/config"
	"github.com/commercelens/commercelens/internal/logging"
	"github.com/commercelens/commercelens/internal/metrics"
	"github.com/commercelens/commercelens/internal/models"
)

// Client is the DuckDB-backed Executor. A circuit breaker wraps every
// query so that a flapping warehouse fails fast instead of stacking up
// blocked requests; while the breaker is open, queries fail immediately
// with a connection-kind error and callers keep serving whatever the cache
// still holds within TTL.
type Client struct {
	conn    *sql.DB
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[models.Dataset]
}

// New opens the warehouse database and verifies connectivity.
func New(cfg *config.WarehouseConfig) (*Client, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create warehouse directory %s: %w", dbDir, err)
			}
		}
	}

	// Disable auto-install/auto-load of extensions to prevent hangs in
	// restricted network environments.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to warehouse: %w", err)
	}

	failureThreshold := cfg.BreakerFailureThreshold
	if failureThreshold == 0 {
		failureThreshold = 5
	}
	openTimeout := cfg.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[models.Dataset](gobreaker.Settings{
		Name:    "warehouse",
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("warehouse circuit breaker state change")
		},
	})

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	logging.Info().Str("path", cfg.Path).Int("threads", numThreads).Msg("warehouse connected")

	return &Client{conn: conn, timeout: timeout, breaker: breaker}, nil
}

// Execute runs one parameterized query and returns the full result set as
// a Dataset, preserving column names, declared types, and row order.
func (c *Client) Execute(ctx context.Context, query string, args ...interface{}) (models.Dataset, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ds, err := c.breaker.Execute(func() (models.Dataset, error) {
		return c.query(ctx, query, args...)
	})
	if err != nil {
		qerr := classify(err)
		metrics.ObserveQuery("execute", start, string(qerr.Kind))
		return models.Dataset{}, qerr
	}

	metrics.ObserveQuery("execute", start, "")
	return ds, nil
}

func (c *Client) query(ctx context.Context, query string, args ...interface{}) (models.Dataset, error) {
	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return models.Dataset{}, err
	}
	defer rows.Close()

	return scanDataset(rows)
}

// Ping verifies warehouse connectivity, for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.conn.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.conn.Close()
}

// scanDataset drains rows into a Dataset. Byte slices are copied to
// strings because the driver may reuse the backing buffer between rows.
func scanDataset(rows *sql.Rows) (models.Dataset, error) {
	colNames, err := rows.Columns()
	if err != nil {
		return models.Dataset{}, err
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return models.Dataset{}, err
	}

	columns := make([]models.Column, len(colNames))
	for i, name := range colNames {
		columns[i] = models.Column{Name: name, Type: colTypes[i].DatabaseTypeName()}
	}

	ds := models.Dataset{Columns: columns, Rows: [][]interface{}{}}

	values := make([]interface{}, len(colNames))
	ptrs := make([]interface{}, len(colNames))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return models.Dataset{}, err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				row[i] = string(b)
			} else {
				row[i] = v
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return models.Dataset{}, err
	}

	return ds, nil
}
