// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package cache

import (
	"errors"
	"fmt"
)

// ErrCredentialsRequired is returned by Manager.Fetch when a total cache
// miss would require a warehouse fetch but no valid credentials are active.
// Cache hits are still served without credentials.
var ErrCredentialsRequired = errors.New("no valid warehouse credentials")

// KeyGenerationError reports an argument that could not be serialized into
// cache key material. A key must never be produced from a partially
// serialized argument set, so key generation fails instead.
type KeyGenerationError struct {
	// Arg identifies the offending argument ("pos[2]" or the keyword name).
	Arg string
	Err error
}

func (e *KeyGenerationError) Error() string {
	return fmt.Sprintf("cannot serialize argument %s for cache key: %v", e.Arg, e.Err)
}

func (e *KeyGenerationError) Unwrap() error { return e.Err }

// StoreError reports a disk I/O or (de)serialization failure on a single
// cache entry. Store errors are never fatal to the store as a whole: sweep
// and stats passes continue past them, and reads treat the entry as absent.
type StoreError struct {
	Op  string // "put", "get", "sweep", "clear", "stats"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cache store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cache store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// FetchError wraps any failure surfaced by Manager.Fetch: key generation
// failures, unrecoverable store failures, or fetch function (query) errors.
// The underlying error is preserved for errors.Is/As inspection.
type FetchError struct {
	Operation string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Operation, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
