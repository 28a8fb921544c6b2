// Package homes, as part of the listing module.
// This file, `handlers.go`, is the HTTP layer: the equivalent of the Nest.js
// HomeController, with the role guard expressed as chi middleware groups.
package homes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/user/realtor-go/apperror"
	"github.com/user/realtor-go/auth"
)

// Handler exposes the listing Service over HTTP.
type Handler struct {
	service Service
	log     *zap.Logger
}

// NewHandler creates a listing Handler.
func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log.Named("homes")}
}

// RegisterRoutes mounts the /home endpoints on router.
// Reads are public. Looking up the realtor needs a signed-in caller, and
// mutations additionally need the REALTOR or ADMIN role.
func (h *Handler) RegisterRoutes(router chi.Router, tokens *auth.TokenIssuer) {
	router.Get("/", h.HandleListHomes())
	router.Get("/{id}", h.HandleGetHome())

	router.Group(func(r chi.Router) {
		r.Use(auth.JWTMiddleware(tokens))
		r.Get("/{id}/realtor", h.HandleGetRealtor())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoles(auth.UserTypeRealtor, auth.UserTypeAdmin))
			r.Post("/", h.HandleCreateHome())
			r.Put("/{id}", h.HandleUpdateHome())
			r.Delete("/{id}", h.HandleDeleteHome())
		})
	})
}

// parseID reads the {id} path parameter as an integer.
func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperror.NewValidationError("Validation failed (numeric string is expected)", err)
	}
	return id, nil
}

// authorizeOwner fails unless caller is the realtor that owns home id.
// There is no role bypass: an ADMIN who does not own the listing is refused too.
func (h *Handler) authorizeOwner(r *http.Request, id int) error {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		return apperror.NewAuthError("authentication required", nil)
	}

	realtor, err := h.service.GetRealtorByHome(r.Context(), id)
	if err != nil {
		return err
	}
	if realtor.ID != caller.ID {
		h.log.Warn("ownership check failed",
			zap.Int("home_id", id),
			zap.Int("owner_id", realtor.ID),
			zap.Int("caller_id", caller.ID),
		)
		return apperror.NewUnauthorizedError("you are not the realtor of this home", nil)
	}
	return nil
}

// HandleListHomes godoc
// @Summary List homes
// @Description Lists homes matching every supplied filter. Omitted parameters do not constrain the result.
// @Tags Homes
// @Produce json
// @Param city query string false "City"
// @Param minPrice query number false "Minimum price, inclusive"
// @Param maxPrice query number false "Maximum price, inclusive"
// @Param propertyType query string false "Property type" Enums(RESIDENTIAL, CONDO)
// @Success 200 {array} homes.HomeResponse
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid filter"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /home [get]
func (h *Handler) HandleListHomes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter, err := BuildFilter(ListHomesQuery{
			City:         q.Get("city"),
			MinPrice:     q.Get("minPrice"),
			MaxPrice:     q.Get("maxPrice"),
			PropertyType: q.Get("propertyType"),
		})
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		h.log.Debug("listing homes", zap.Any("filter", filter.Fields()))

		homes, err := h.service.ListHomes(r.Context(), filter)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if homes == nil {
			homes = []HomeResponse{}
		}
		auth.WriteJSON(w, http.StatusOK, homes)
	}
}

// HandleGetHome godoc
// @Summary Get a home
// @Tags Homes
// @Produce json
// @Param id path int true "Home ID"
// @Success 200 {object} homes.HomeResponse
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Non-numeric id"
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Router /home/{id} [get]
func (h *Handler) HandleGetHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		home, err := h.service.GetHome(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, home)
	}
}

// HandleGetRealtor godoc
// @Summary Get the realtor of a home
// @Tags Homes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Home ID"
// @Success 200 {object} homes.Realtor
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Router /home/{id}/realtor [get]
func (h *Handler) HandleGetRealtor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		realtor, err := h.service.GetRealtorByHome(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, realtor)
	}
}

// HandleCreateHome godoc
// @Summary Create a home
// @Description Creates a listing owned by the calling realtor.
// @Tags Homes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param home body homes.CreateHomeRequest true "Listing"
// @Success 201 {object} homes.HomeResponse
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Forbidden - Role not allowed"
// @Router /home [post]
func (h *Handler) HandleCreateHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req CreateHomeRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		home, err := h.service.CreateHome(r.Context(), req, caller.ID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		h.log.Info("home created", zap.Int("home_id", home.ID), zap.Int("realtor_id", caller.ID))
		auth.WriteJSON(w, http.StatusCreated, home)
	}
}

// HandleUpdateHome godoc
// @Summary Update a home
// @Description Only the realtor who owns the listing may update it.
// @Tags Homes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Home ID"
// @Param home body homes.UpdateHomeRequest true "Fields to change"
// @Success 200 {object} homes.HomeResponse
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Router /home/{id} [put]
func (h *Handler) HandleUpdateHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdateHomeRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.authorizeOwner(r, id); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		home, err := h.service.UpdateHomeByID(r.Context(), id, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, home)
	}
}

// HandleDeleteHome godoc
// @Summary Delete a home
// @Description Only the realtor who owns the listing may delete it.
// @Tags Homes
// @Security BearerAuth
// @Param id path int true "Home ID"
// @Success 204 "Deleted"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Router /home/{id} [delete]
func (h *Handler) HandleDeleteHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.authorizeOwner(r, id); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.DeleteHomeByID(r.Context(), id); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		h.log.Info("home deleted", zap.Int("home_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
