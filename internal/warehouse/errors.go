// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/sony/gobreaker/v2"
)

// ErrorKind classifies warehouse query failures. The cache layer treats
// every kind identically: the error is propagated to the caller and never
// cached.
type ErrorKind string

const (
	KindConnection   ErrorKind = "connection"
	KindTimeout      ErrorKind = "timeout"
	KindMalformed    ErrorKind = "malformed_query"
	KindAccessDenied ErrorKind = "access_denied"
	KindUnknown      ErrorKind = "unknown"
)

// QueryError is the typed failure returned by the executor.
type QueryError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("warehouse query failed (%s): %s", e.Kind, e.Message)
}

func (e *QueryError) Unwrap() error { return e.Err }

// classify maps a low-level driver or breaker error to a QueryError.
func classify(err error) *QueryError {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &QueryError{Kind: KindConnection, Message: "warehouse unreachable (circuit open)", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &QueryError{Kind: KindTimeout, Message: "query exceeded its deadline", Err: err}
	case errors.Is(err, context.Canceled):
		return &QueryError{Kind: KindTimeout, Message: "query canceled", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &QueryError{Kind: KindTimeout, Message: err.Error(), Err: err}
		}
		return &QueryError{Kind: KindConnection, Message: err.Error(), Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "syntax error"), strings.Contains(msg, "parser error"),
		strings.Contains(msg, "binder error"):
		return &QueryError{Kind: KindMalformed, Message: err.Error(), Err: err}
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "access denied"),
		strings.Contains(msg, "not authorized"):
		return &QueryError{Kind: KindAccessDenied, Message: err.Error(), Err: err}
	case strings.Contains(msg, "connection"), strings.Contains(msg, "could not open"):
		return &QueryError{Kind: KindConnection, Message: err.Error(), Err: err}
	}

	return &QueryError{Kind: KindUnknown, Message: err.Error(), Err: err}
}
