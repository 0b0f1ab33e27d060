package adaptor

import (
	"encoding/json"
	"net/http"

	"court-booking/internal/data/entity"
	"court-booking/internal/domain"
	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Court   *CourtHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Court:   NewCourtHandler(service.Court, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// actorFromRequest returns the authenticated caller. It writes a 401 and
// reports false when the request carries no identity.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return domain.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return domain.Actor{ID: userID, Role: entity.UserRole(role)}, true
}

// decodeBody decodes and validates a JSON body into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
