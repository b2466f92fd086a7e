package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-shop/utils"
)

// Key type for context
type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware verifies JWT tokens and attaches user claims to the
// request context.
type AuthMiddleware struct {
	tokens *utils.TokenManager
}

// NewAuthMiddleware creates an AuthMiddleware
func NewAuthMiddleware(tokens *utils.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Verify requires a valid Bearer token.
func (m *AuthMiddleware) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := m.tokens.Parse(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireAdmin ensures that the user has admin privileges.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r)
		if !ok || !claims.IsAdmin {
			http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCustomer keeps admin tokens out of shopping routes; carts and
// checkouts belong to customers.
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r)
		if !ok || claims.IsAdmin {
			http.Error(w, "Forbidden: Customers only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithClaims attaches verified claims to a context.
func WithClaims(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

// ClaimsFrom extracts the verified claims set by Verify.
func ClaimsFrom(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(userContextKey).(*utils.Claims)
	return claims, ok
}
