// Package auth, as part of the authentication module.
// This file, `middleware.go`, defines the HTTP middleware that authenticates the
// caller (JWTMiddleware) and enforces role requirements (RequireRoles).
// In Nest.js these would be an AuthGuard and a RolesGuard.
package auth

import (
	"net/http"
	"strings"

	"github.com/user/realtor-go/apperror"
)

// JWTMiddleware verifies the Bearer access token and stores the caller's
// UserInfo on the request context.
func JWTMiddleware(tokens *TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			// The Authorization header should be in the format "Bearer {token}".
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := tokens.ValidateToken(parts[1], tokenTypeAccess)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("Invalid token", err))
				return
			}

			ctx := NewContextWithUser(r.Context(), claims.UserInfo())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles rejects callers whose role is not in roles. It must run after
// JWTMiddleware. Ownership checks happen later, inside the handlers.
func RequireRoles(roles ...UserType) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, ok := UserFromContext(r.Context())
			if !ok {
				WriteError(w, r, apperror.NewAuthError("authentication required", nil))
				return
			}
			if !IsAllowed(info.UserType, roles...) {
				WriteError(w, r, apperror.NewUnauthorizedError("insufficient permissions", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
