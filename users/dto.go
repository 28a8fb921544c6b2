// Package users, as part of the user profile management module.
// This file, `dto.go`, defines Data Transfer Objects (DTOs) for the users module.
// DTOs are simple objects used to transfer data between layers, especially between
// handlers (controllers) and services, and for API request/response bodies.
// This is very similar to DTOs in Nest.js, often used with validation decorators;
// here the `validate` struct tags play the role of class-validator decorators.
package users

import (
	"time"

	"github.com/user/realtor-go/auth"
)

// UserProfileResponse represents the data returned for a user profile.
// @Description User profile information
type UserProfileResponse struct {
	// The ID of the user
	ID int `json:"id" example:"1"`
	// Display name
	Name string `json:"name" example:"Jane Doe"`
	// Contact phone, as shown on listings when the user is a realtor
	Phone string `json:"phone" example:"555 555-0123"`
	// The email address of the user. Not editable here: it is the sign-in identity.
	Email string `json:"email" example:"jane@example.com"`
	// Role of the account
	UserType auth.UserType `json:"user_type" example:"BUYER"`
	// The time the user was created
	CreatedAt time.Time `json:"created_at"`
	// The time the profile last changed
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserProfileRequest represents the data for updating a user profile.
// @Description Request body for updating user profile
type UpdateUserProfileRequest struct {
	// Using pointers (`*string`) allows for partial updates: if a field is `nil`, it means
	// the client doesn't intend to update that field.
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1" example:"Jane Q. Doe"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,phone" example:"(555) 555-0199"`
}

// empty reports whether the request changes nothing.
func (r UpdateUserProfileRequest) empty() bool {
	return r.Name == nil && r.Phone == nil
}
