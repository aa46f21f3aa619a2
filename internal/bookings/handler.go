package bookings

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lagoon-stays/lagoon/internal/platform/httpx"
	"github.com/lagoon-stays/lagoon/internal/rbac"
)

// Handler wires HTTP endpoints for the booking lifecycle.
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

// AuthMiddleware abstracts the bearer authentication middleware.
type AuthMiddleware interface {
	RequireAuth(http.Handler) http.Handler
}

// MountRoutes registers booking routes. Every route requires authentication.
func (h *Handler) MountRoutes(r chi.Router, authMW AuthMiddleware, guard rbac.Middleware) {
	r.Use(authMW.RequireAuth)

	r.With(guard.Require(rbac.PermCreateBooking)).Post("/", h.handleCreate)
	r.With(guard.Require(rbac.PermViewOwnBooking)).Get("/", h.handleGetOwn)
	r.With(
		guard.RequireRole(rbac.RoleAdmin, rbac.RoleSuperadmin),
		guard.Require(rbac.PermViewAllBookings),
	).Get("/admin/all", h.handleListAll)
	r.Get("/{id}", h.handleGetByID)
	r.With(
		guard.RequireRole(rbac.RoleAdmin, rbac.RoleSuperadmin),
		guard.Require(rbac.PermUpdateBookingStatus),
	).Patch("/{id}/status", h.handleSetStatus)
	r.With(guard.Require(rbac.PermCancelOwnBooking)).Patch("/{id}/cancel", h.handleCancel)
}

type createBookingRequest struct {
	ResortID        string `json:"resortId" validate:"required,uuid4"`
	CheckInDate     string `json:"checkInDate" validate:"required"`
	CheckOutDate    string `json:"checkOutDate" validate:"required"`
	NumberOfGuests  int    `json:"numberOfGuests" validate:"required,gt=0"`
	SpecialRequests string `json:"specialRequests"`
	PaymentMethod   string `json:"paymentMethod" validate:"omitempty,oneof=credit_card debit_card paypal"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "missing required fields")
		return
	}
	checkIn, errIn := parseDate(req.CheckInDate)
	checkOut, errOut := parseDate(req.CheckOutDate)
	if errIn != nil || errOut != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid date format")
		return
	}
	resortID, _ := uuid.Parse(req.ResortID)

	booking, err := h.service.Create(r.Context(), rbac.PrincipalFromContext(r.Context()), CreateInput{
		ResortID:        resortID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		h.respondError(w, "create booking", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "booking created successfully",
		"data":    booking,
	})
}

func (h *Handler) handleGetOwn(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.GetOwn(r.Context(), rbac.PrincipalFromContext(r.Context()))
	if err != nil {
		h.respondError(w, "fetch own bookings", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "bookings fetched successfully",
		"data":    list,
	})
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}
	detail, err := h.service.GetByID(r.Context(), rbac.PrincipalFromContext(r.Context()), id)
	if err != nil {
		h.respondError(w, "fetch booking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": detail})
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}
	var req setStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "missing required fields")
		return
	}
	booking, err := h.service.SetStatus(r.Context(), rbac.PrincipalFromContext(r.Context()), id, req.Status)
	if err != nil {
		h.respondError(w, "update booking status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "booking status updated",
		"data":    booking,
	})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}
	booking, err := h.service.Cancel(r.Context(), rbac.PrincipalFromContext(r.Context()), id)
	if err != nil {
		h.respondError(w, "cancel booking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "booking cancelled successfully",
		"data":    booking,
	})
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAll(r.Context(), rbac.PrincipalFromContext(r.Context()))
	if err != nil {
		h.respondError(w, "list all bookings", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "all bookings fetched",
		"count":   len(list),
		"data":    list,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, rbac.ErrUnauthenticated):
		httpx.Problem(w, http.StatusUnauthorized, "Unauthenticated", "authentication required")
	case errors.Is(err, rbac.ErrForbidden), errors.Is(err, rbac.ErrOwnershipViolation):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "unauthorized")
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "booking not found")
	case errors.Is(err, ErrResortNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "resort not found")
	case errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidTransition):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Internal(w, err)
	}
}

// parseDate accepts RFC3339 timestamps or bare yyyy-mm-dd dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
