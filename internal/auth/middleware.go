// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/commercelens/commercelens/internal/config"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// ClaimsFromContext retrieves the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// Authenticator gates API requests. In "none" mode every request passes
// with admin claims; in "jwt" mode a valid Bearer token is required.
type Authenticator struct {
	mode   string
	tokens *TokenManager

	adminUsername string
	adminPassword string
}

// NewAuthenticator builds an authenticator from the security config.
func NewAuthenticator(cfg *config.SecurityConfig) *Authenticator {
	a := &Authenticator{
		mode:          cfg.AuthMode,
		adminUsername: cfg.AdminUsername,
		adminPassword: cfg.AdminPassword,
	}
	if cfg.AuthMode == "jwt" {
		a.tokens = NewTokenManager(cfg.JWTSecret, cfg.SessionTimeout)
	}
	return a
}

// Tokens exposes the token manager for the login handler.
func (a *Authenticator) Tokens() *TokenManager { return a.tokens }

// Enabled reports whether authentication is enforced.
func (a *Authenticator) Enabled() bool { return a.mode == "jwt" }

// CheckPassword verifies the admin credential pair. The configured
// password may be a bcrypt hash ($2 prefix) or plaintext.
func (a *Authenticator) CheckPassword(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.adminUsername)) != 1 {
		return false
	}
	if strings.HasPrefix(a.adminPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(a.adminPassword), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.adminPassword)) == 1
}

// Middleware authenticates each request and stores the claims in context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			ctx := context.WithValue(r.Context(), claimsKey, &Claims{Username: "anonymous", Role: RoleAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w)
			return
		}

		claims, err := a.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests whose claims do not carry the given role.
// Must run after Middleware.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != role {
				forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"status":"error","error":{"code":"UNAUTHORIZED","message":"Authentication required"}}`))
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"status":"error","error":{"code":"FORBIDDEN","message":"Insufficient permissions"}}`))
}
