// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package warehouse provides the query executor boundary: it sends a
// parameterized SQL query to the analytics warehouse (DuckDB) and returns a
// tabular Dataset or a typed *QueryError.
package warehouse

import (
	"context"

	"github.com/commercelens/commercelens/internal/models"
)

// Executor executes one parameterized query against the warehouse.
//
// Implementations honor the caller's context deadline; a deadline overrun
// surfaces as *QueryError with KindTimeout. Failures are returned, never
// retried and never partially cached.
type Executor interface {
	Execute(ctx context.Context, query string, args ...interface{}) (models.Dataset, error)
}
