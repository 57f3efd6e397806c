// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package warehouse

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sony/gobreaker/v2"
)

type fakeNetError struct{ timeout bool }

func (e fakeNetError) Error() string   { return "dial tcp: connection refused" }
func (e fakeNetError) Timeout() bool   { return e.timeout }
func (e fakeNetError) Temporary() bool { return false }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"circuit open", gobreaker.ErrOpenState, KindConnection},
		{"circuit half-open full", gobreaker.ErrTooManyRequests, KindConnection},
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"canceled", context.Canceled, KindTimeout},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), KindTimeout},
		{"net timeout", fakeNetError{timeout: true}, KindTimeout},
		{"net refused", fakeNetError{timeout: false}, KindConnection},
		{"syntax error", errors.New(`Parser Error: syntax error at or near "SELEC"`), KindMalformed},
		{"binder error", errors.New(`Binder Error: column "foo" not found`), KindMalformed},
		{"permission denied", errors.New("IO Error: permission denied"), KindAccessDenied},
		{"could not open", errors.New("IO Error: could not open database file"), KindConnection},
		{"something else", errors.New("out of memory"), KindUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qerr := classify(tc.err)
			if qerr.Kind != tc.want {
				t.Errorf("classify(%v) = %s, want %s", tc.err, qerr.Kind, tc.want)
			}
			if !errors.Is(qerr, tc.err) {
				t.Errorf("classified error does not unwrap to cause")
			}
		})
	}
}

func TestQueryErrorMessage(t *testing.T) {
	qerr := &QueryError{Kind: KindTimeout, Message: "query exceeded its deadline"}
	got := qerr.Error()
	if got != "warehouse query failed (timeout): query exceeded its deadline" {
		t.Errorf("Unexpected message: %s", got)
	}
}
