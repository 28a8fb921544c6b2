// Package auth, as part of the authentication module.
// This file, `handlers.go`, is the HTTP layer of the module, the equivalent of
// the Nest.js AuthController. It also exports the response helpers every other
// feature package uses, so all errors leave the service in the same shape.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/user/realtor-go/apperror"
)

// Handlers wraps the auth Service to provide HTTP handlers.
type Handlers struct {
	service *Service
	tokens  *TokenIssuer
}

// NewHandlers creates a new Handlers instance
func NewHandlers(service *Service, tokens *TokenIssuer) *Handlers {
	return &Handlers{service: service, tokens: tokens}
}

// RegisterRoutes mounts the /auth endpoints on router.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Post("/signup", h.HandleSignup())
	router.Post("/signin", h.HandleSignin())
	router.Post("/refresh", h.HandleRefreshToken())
	router.With(JWTMiddleware(h.tokens)).Get("/me", h.HandleMe())
}

// HandleSignup godoc
// @Summary User Signup
// @Description Registers a new buyer account. The email must not already be registered.
// @Tags Auth
// @Accept json
// @Produce json
// @Param signupBody body auth.SignupRequest true "Signup details"
// @Success 201 {object} auth.UserResponse "User created"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input"
// @Failure 409 {object} apperror.ErrorResponse "Conflict - Email already registered"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/signup [post]
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := DecodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		user, err := h.service.Signup(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusCreated, NewUserResponse(user))
	}
}

// HandleSignin godoc
// @Summary User Signin
// @Description Exchanges email and password for access and refresh tokens.
// @Tags Auth
// @Accept json
// @Produce json
// @Param signinBody body auth.SigninRequest true "Credentials"
// @Success 200 {object} auth.TokenResponse "Signed in"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid credentials"
// @Router /auth/signin [post]
func (h *Handlers) HandleSignin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SigninRequest
		if err := DecodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Signin(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleRefreshToken godoc
// @Summary Refresh Access Token
// @Description Provides a new access token using a valid refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param refreshBody body auth.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} auth.TokenResponse "Token refreshed"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Missing refresh token"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *Handlers) HandleRefreshToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshTokenRequest
		if err := DecodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.RefreshToken(r.Context(), req.RefreshToken)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleMe godoc
// @Summary Current caller
// @Description Returns the identity carried by the access token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.UserInfo
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *Handlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}
		WriteJSON(w, http.StatusOK, info)
	}
}

// WriteJSON serializes data to JSON with the given status. A nil data writes no body.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zap.L().Error("failed to encode response", zap.Error(err))
		}
	}
}

// WriteError is the boundary mapper from errors to HTTP responses.
// Errors that are not *apperror.AppError become a generic 500 so internal
// details never reach the client; 5xx errors are logged with their cause.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Stringer("type", appErr.Type),
			zap.Error(appErr),
		)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
