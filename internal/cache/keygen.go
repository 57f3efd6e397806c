// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Args collects the key material for one cached operation: an ordered list
// of positional arguments and a set of named arguments.
//
// Only values explicitly added to Args become key material. Anything that
// must not influence the key (connection handles, loggers, context) is
// simply never added.
type Args struct {
	positional []interface{}
	keyword    map[string]interface{}
}

// NewArgs creates an Args with the given positional arguments.
func NewArgs(positional ...interface{}) *Args {
	return &Args{positional: positional}
}

// Kw adds a named argument and returns the Args for chaining.
// Named arguments are order-independent: Kw("a", 1).Kw("b", 2) and
// Kw("b", 2).Kw("a", 1) produce identical keys.
func (a *Args) Kw(name string, value interface{}) *Args {
	if a.keyword == nil {
		a.keyword = make(map[string]interface{})
	}
	a.keyword[name] = value
	return a
}

// GenerateKey derives a stable, content-addressed cache key from an
// operation identifier and its arguments.
//
// Properties:
//   - Deterministic across calls and process restarts (canonical JSON
//     serialization, no randomized seeding).
//   - Named arguments are sorted by name before hashing.
//   - Any differing argument changes the key with overwhelming probability
//     (SHA-256, truncated to 128 bits).
//
// An argument that cannot be serialized fails with *KeyGenerationError
// rather than silently producing an unstable key.
func GenerateKey(operationID string, args *Args) (string, error) {
	h := sha256.New()
	h.Write([]byte(operationID))
	h.Write([]byte{0})

	if args != nil {
		for i, v := range args.positional {
			b, err := json.Marshal(v)
			if err != nil {
				return "", &KeyGenerationError{Arg: fmt.Sprintf("pos[%d]", i), Err: err}
			}
			h.Write(b)
			h.Write([]byte{0})
		}

		names := make([]string, 0, len(args.keyword))
		for name := range args.keyword {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b, err := json.Marshal(args.keyword[name])
			if err != nil {
				return "", &KeyGenerationError{Arg: name, Err: err}
			}
			h.Write([]byte(name))
			h.Write([]byte{'='})
			h.Write(b)
			h.Write([]byte{0})
		}
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16]), nil
}
