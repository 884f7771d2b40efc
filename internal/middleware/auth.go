package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/asbbic/membership/internal/services/users"
	"github.com/asbbic/membership/pkg/token"
)

// RequireAuth accepts the access token either as the auth cookie set at
// login or as a Bearer header, for API clients.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""

		if cookie, err := r.Cookie(token.AccessTokenName); err == nil {
			tokenString = cookie.Value
		}

		if tokenString == "" {
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if tokenString == "" {
			m.apiError(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		claims, err := m.TokenSvc.ValidateToken(tokenString)
		if err != nil {
			m.apiError(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		userCtx := users.UserContextValue{
			ID:    claims.ID,
			Email: claims.Email,
			Roles: claims.Roles,
		}
		if slices.Contains(claims.Roles, token.RoleAdmin) {
			userCtx.IsAuthenticatedAsAdmin = true
		}

		next.ServeHTTP(w, r.WithContext(users.NewContextWithUser(r.Context(), &userCtx)))
	})
}

func (m *Middleware) RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := users.FromContext(r.Context())
			if !ok {
				m.apiError(w, "Unauthorized: No user found", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(claims.Roles, requiredRole) {
				m.apiError(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
