package wire

import (
	"court-booking/internal/adaptor"
	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/pkg/middleware"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/my", bookingHandler.ListMyBookings)

		// court owner or admin, checked against the court by the service
		r.Get("/court/{courtId}", bookingHandler.ListCourtBookings)

		// requester, court owner or admin
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Delete("/{id}", bookingHandler.CancelBooking)

		// court owner or admin
		r.Patch("/{id}/status", bookingHandler.UpdateBookingStatus)

		// ==================== OWNER ROUTES ====================
		r.With(middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin)).
			Get("/owner", bookingHandler.ListOwnerBookings)

		// ==================== ADMIN ROUTES ====================
		r.With(middleware.RequireRole(log, entity.RoleAdmin)).
			Get("/all", bookingHandler.ListAllBookings)
	})
}
