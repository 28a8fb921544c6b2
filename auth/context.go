// Package auth, as part of the authentication module.
// This file, `context.go`, carries the caller identity on the request context
// and holds the role policy that decides who may reach a route.
package auth

import (
	"context"
)

// `contextKey` is a custom type for context keys. Using a custom type prevents collisions
// with context keys defined in other packages.
type contextKey string

const userInfoContextKey contextKey = "auth_user"

// NewContextWithUser returns a child context carrying the caller identity.
func NewContextWithUser(ctx context.Context, info UserInfo) context.Context {
	return context.WithValue(ctx, userInfoContextKey, info)
}

// UserFromContext extracts the caller identity placed by JWTMiddleware.
func UserFromContext(ctx context.Context) (UserInfo, bool) {
	info, ok := ctx.Value(userInfoContextKey).(UserInfo)
	return info, ok
}

// IsAllowed reports whether role is one of required. An empty required set
// allows every role. This replaces Nest's `@Roles(...)` decorator + guard pair.
func IsAllowed(role UserType, required ...UserType) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}
