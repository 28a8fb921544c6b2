// Package auth provides authentication and authorization functionality
// This file, `dto.go` (Data Transfer Object), defines the request and response
// bodies of the /auth endpoints. The `validate` tags are checked by DecodeJSON,
// playing the part of class-validator decorators on a Nest.js DTO.
package auth

import "time"

// SignupRequest represents the signup request payload.
// There is deliberately no role field: every signup creates a BUYER.
type SignupRequest struct {
	Name     string `json:"name" validate:"required" example:"Jane Doe"`
	Phone    string `json:"phone" validate:"required,phone" example:"555 555-0123"`
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required,min=5" example:"strongpassword123"`
}

// SigninRequest represents the signin request payload.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// TokenResponse represents the authentication token response
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int64  `json:"expires_in" example:"1700000000"` // Unix time the access token expires at.
}

// RefreshTokenRequest represents the token refresh request payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// UserResponse is the sanitised view of a user returned by signup.
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Jane Doe"`
	Phone     string    `json:"phone" example:"555 555-0123"`
	Email     string    `json:"email" example:"jane@example.com"`
	UserType  UserType  `json:"user_type" example:"BUYER"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse strips a User down to its public fields.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
	}
}
