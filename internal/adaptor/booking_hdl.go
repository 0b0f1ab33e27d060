package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// GetBookingByID handles GET /api/bookings/{id} (requester, court owner or admin)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ListMyBookings handles GET /api/bookings/my (protected)
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	req := paginationFromQuery(r)
	bookings, err := h.service.ListUserBookings(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "list user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListOwnerBookings handles GET /api/bookings/owner (owner or admin)
func (h *BookingHandler) ListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	req := paginationFromQuery(r)
	bookings, err := h.service.ListOwnerBookings(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "list owner bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListCourtBookings handles GET /api/bookings/court/{courtId} (court owner or admin)
func (h *BookingHandler) ListCourtBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.ListCourtBookings(r.Context(), actor, chi.URLParam(r, "courtId"))
	if err != nil {
		writeServiceError(w, h.log, err, "list court bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListAllBookings handles GET /api/bookings/all (admin)
func (h *BookingHandler) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	req := paginationFromQuery(r)
	bookings, err := h.service.ListAllBookings(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "list all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateBookingStatus handles PATCH /api/bookings/{id}/status (court owner or admin)
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateBookingStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", booking)
}

// CancelBooking handles DELETE /api/bookings/{id} (requester, court owner or admin)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}
