package resorts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lagoon-stays/lagoon/internal/platform/httpx"
	"github.com/lagoon-stays/lagoon/internal/rbac"
)

// Handler wires HTTP endpoints for the resort catalog.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// AuthMiddleware abstracts the bearer authentication middleware so the
// package does not depend on the auth package.
type AuthMiddleware interface {
	RequireAuth(http.Handler) http.Handler
}

// MountRoutes registers resort routes. Listing and detail are public;
// mutations require admin level access.
func (h *Handler) MountRoutes(r chi.Router, authMW AuthMiddleware, guard rbac.Middleware) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		r.Use(guard.RequireRole(rbac.RoleAdmin, rbac.RoleSuperadmin))
		r.With(guard.Require(rbac.PermCreateResort)).Post("/", h.handleCreate)
		r.With(guard.Require(rbac.PermUpdateResort)).Put("/{id}", h.handleUpdate)
		r.With(guard.Require(rbac.PermDeleteResort)).Delete("/{id}", h.handleDelete)
	})
}

type resortRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	PricePerNight float64  `json:"pricePerNight" validate:"required,gt=0"`
	Amenities     []string `json:"amenities"`
	MaxGuests     int      `json:"maxGuests" validate:"required,gt=0"`
	Rooms         int      `json:"rooms" validate:"required,gt=0"`
	Image         string   `json:"image"`
}

func (req resortRequest) toInput() ResortInput {
	return ResortInput{
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		Amenities:     req.Amenities,
		MaxGuests:     req.MaxGuests,
		Rooms:         req.Rooms,
		Image:         req.Image,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)
	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list resorts", slog.Any("error", err))
		httpx.Internal(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "resorts fetched successfully",
		"count":   len(list),
		"data":    list,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "resort not found")
		return
	}
	resort, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "fetch resort", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": resort})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req resortRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "missing required fields")
		return
	}
	resort, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.respondError(w, "create resort", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "resort created successfully",
		"data":    resort,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "resort not found")
		return
	}
	var req resortRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "missing required fields")
		return
	}
	resort, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		h.respondError(w, "update resort", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "resort updated successfully",
		"data":    resort,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "resort not found")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "delete resort", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "resort deleted successfully"})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "resort not found")
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.Internal(w, err)
}

// parseListFilter reads filter criteria from the query string. Amenities
// accept either a JSON array or a comma separated list.
func parseListFilter(r *http.Request) ListFilter {
	q := r.URL.Query()
	filter := ListFilter{Location: strings.TrimSpace(q.Get("location"))}

	if raw := strings.TrimSpace(q.Get("amenities")); raw != "" {
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			filter.Amenities = parsed
		} else {
			for _, a := range strings.Split(raw, ",") {
				if a = strings.TrimSpace(a); a != "" {
					filter.Amenities = append(filter.Amenities, a)
				}
			}
		}
	}
	if v, err := strconv.ParseFloat(q.Get("minRate"), 64); err == nil && v > 0 {
		filter.MinRate = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxRate"), 64); err == nil && v > 0 {
		filter.MaxRate = v
	}
	return filter
}
