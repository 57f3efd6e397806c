// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndValidate(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	token, expires, err := m.Issue("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}
	if !expires.After(time.Now()) {
		t.Error("Expected expiry in the future")
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Expected username admin, got %s", claims.Username)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("Expected admin role, got %s", claims.Role)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Validate(bad); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidToken", bad, err)
		}
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager(strings.Repeat("x", 32), time.Hour)

	token, _, err := m.Issue("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	m.ttl = -time.Minute

	token, _, err := m.Issue("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}
