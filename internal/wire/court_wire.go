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

func wireCourt(
	r chi.Router,
	courtHandler *adaptor.CourtHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/courts - active courts, filtered by name, address and price
	r.Get("/api/courts", courtHandler.ListCourts)
	r.Get("/api/courts/{id}", courtHandler.GetCourt)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// ownership of an existing court is checked by the service
		r.Put("/api/courts/{id}", courtHandler.UpdateCourt)
		r.Patch("/api/courts/{id}/status", courtHandler.UpdateCourtStatus)
		r.Delete("/api/courts/{id}", courtHandler.DeleteCourt)

		// ==================== OWNER ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin))

			r.Post("/api/courts", courtHandler.CreateCourt)
			r.Get("/api/owner/courts", courtHandler.ListOwnerCourts)
		})
	})
}
