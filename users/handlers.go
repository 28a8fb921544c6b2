// Package users encapsulates all functionality related to user profile management.
// This follows a modular design, similar to feature modules in Nest.js.
// This file, `handlers.go`, is responsible for handling HTTP requests related to users.
// It acts as the "Controller" layer in an MVC or similar architectural pattern.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	// `apperror` provides standardized error types and responses.
	"github.com/user/realtor-go/apperror"
	// `auth` provides the JWT middleware, the caller identity and the response helpers.
	"github.com/user/realtor-go/auth"
)

// UserHandlers provides HTTP handlers for user profile management.
// It holds the service as a dependency, the way a Nest.js Controller injects a Service.
type UserHandlers struct {
	service ProfileService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service ProfileService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts the /users endpoints. Every route requires a valid access token.
func (h *UserHandlers) RegisterRoutes(router chi.Router, tokens *auth.TokenIssuer) {
	router.Use(auth.JWTMiddleware(tokens))
	router.Get("/me", h.HandleGetUserProfile())
	router.Put("/me", h.HandleUpdateUserProfile())
}

// callerID pulls the authenticated user's ID out of the request context.
func callerID(r *http.Request) (int, error) {
	info, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Reaching here means the route was mounted without JWTMiddleware.
		return 0, apperror.NewAuthError("authentication required", nil)
	}
	return info.ID, nil
}

// HandleGetUserProfile godoc
// @Summary Get current user's profile
// @Description Retrieves the profile information for the currently authenticated user.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users.UserProfileResponse "Successfully retrieved user profile"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me [get]
func (h *UserHandlers) HandleGetUserProfile() http.HandlerFunc {
	// The returned function is a closure capturing `h`, so it can reach `h.service`.
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		profile, err := h.service.GetUserProfile(r.Context(), userID)
		if err != nil {
			// The service layer returns `apperror` types, which `auth.WriteError` maps.
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, profile)
	}
}

// HandleUpdateUserProfile godoc
// @Summary Update current user's profile
// @Description Updates the name and/or phone of the currently authenticated user.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userProfile body users.UpdateUserProfileRequest true "User profile data to update"
// @Success 200 {object} users.UserProfileResponse "Successfully updated user profile"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input data"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me [put]
func (h *UserHandlers) HandleUpdateUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		// Decode and validate the JSON body into the DTO.
		var req UpdateUserProfileRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if req.empty() {
			auth.WriteError(w, r, apperror.NewBadRequestError("No fields provided for update", nil))
			return
		}

		updatedProfile, err := h.service.UpdateUserProfile(r.Context(), userID, &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, updatedProfile)
	}
}
