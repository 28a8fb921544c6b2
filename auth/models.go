// Package auth, as previously noted, handles authentication.
// This file, `models.go`, defines the user entity and the caller identity that
// the JWT middleware puts on every authenticated request.
package auth

import (
	"fmt"
	"time"
)

// UserType is the role of a user. It mirrors the `user_type` enum in PostgreSQL.
type UserType string

const (
	UserTypeBuyer   UserType = "BUYER"
	UserTypeRealtor UserType = "REALTOR"
	UserTypeAdmin   UserType = "ADMIN"
)

// Valid reports whether t is one of the known roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeBuyer, UserTypeRealtor, UserTypeAdmin:
		return true
	}
	return false
}

// ParseUserType converts a raw string into a UserType.
func ParseUserType(s string) (UserType, error) {
	t := UserType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown user type %q", s)
	}
	return t, nil
}

// User represents a row of the `users` table.
// The `json:"-"` tag on HashedPassword keeps the hash out of every API response.
type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	UserType       UserType  `json:"user_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser is the insert payload for UserStore.CreateUser.
// It only ever carries a hash, never a plaintext password.
type NewUser struct {
	Name           string
	Phone          string
	Email          string
	HashedPassword string
	UserType       UserType
}

// UserInfo is the identity of the caller, decoded from the access token.
// Analogous to the `@User() user: UserInfo` parameter decorator in Nest.js.
type UserInfo struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	UserType UserType `json:"user_type"`
}
