package wire

import (
	"context"
	"net/http"
	"time"

	"court-booking/internal/adaptor"
	"court-booking/internal/data/repository"
	"court-booking/internal/usecase"
	"court-booking/pkg/database"
	"court-booking/pkg/middleware"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the HTTP router built over the services.
type App struct {
	Router *chi.Mux
}

// Wiring builds the handlers for service and mounts every route.
func Wiring(
	repo *repository.Repository,
	service *usecase.Service,
	db database.PgxIface,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, db, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	db database.PgxIface,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireCourt(r, handler.Court, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)

	r.Get("/health", healthCheck(db))

	return r
}

// healthCheck reports 200 only while the database answers a ping.
func healthCheck(db database.PgxIface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "database unavailable", nil, nil)
			return
		}

		utils.ResponseSuccess(w, "OK", nil)
	}
}
