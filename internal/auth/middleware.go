package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
// Using a package-private type prevents collisions: only this package can
// create a key of type contextKey, so only this package can read or write
// claims in the context.
type contextKey string

const claimsKey contextKey = "claims"

// RequireAuth is a middleware that enforces authentication on gated routes
// (creating and deleting blogs). It extracts the bearer token, validates it,
// and stores the identity claims in the request context. A missing or invalid
// token stops the chain with 401 Unauthorized — the handler never runs.
//
// TOKEN EXTRACTION ORDER:
// 1. "Authorization: Bearer <jwt>" header — the API contract used by clients
// 2. the "token" HttpOnly cookie — set by the browser-based GitHub OAuth flow
//
// Reads and like-updates are deliberately NOT behind this middleware; the
// route table in internal/server is the single place that decides which
// operations are gated.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := extractClaims(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"valid authentication token required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the authenticated identity from the request
// context. Returns (nil, false) if the request is anonymous.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// extractClaims finds the bearer token on the request and validates it.
func extractClaims(r *http.Request, tokens *TokenService) (*Claims, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		// Scheme comparison is case-insensitive per RFC 9110.
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			return tokens.Validate(strings.TrimSpace(header[7:]))
		}
	}

	cookie, err := r.Cookie("token")
	if err != nil {
		// http.ErrNoCookie — no credentials at all, the request is anonymous
		return nil, err
	}

	return tokens.Validate(cookie.Value)
}
