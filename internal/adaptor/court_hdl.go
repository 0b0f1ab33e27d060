package adaptor

import (
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CourtHandler struct {
	service usecase.CourtService
	log     *zap.Logger
}

func NewCourtHandler(service usecase.CourtService, log *zap.Logger) *CourtHandler {
	return &CourtHandler{
		service: service,
		log:     log.With(zap.String("handler", "court")),
	}
}

// ListCourts handles GET /api/courts (public)
func (h *CourtHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.CourtListRequest{
		PaginatedRequest: paginationFromQuery(r),
		Name:             utils.ParseOptionalString(query.Get("name")),
		Address:          utils.ParseOptionalString(query.Get("address")),
		MinPrice:         utils.ParseOptionalDecimal(query.Get("min_price")),
		MaxPrice:         utils.ParseOptionalDecimal(query.Get("max_price")),
	}

	courts, err := h.service.ListCourts(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list courts")
		return
	}

	utils.ResponseSuccess(w, "success", courts)
}

// GetCourt handles GET /api/courts/{id} (public)
func (h *CourtHandler) GetCourt(w http.ResponseWriter, r *http.Request) {
	court, err := h.service.GetCourt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get court")
		return
	}

	utils.ResponseSuccess(w, "success", court)
}

// CreateCourt handles POST /api/courts (owner or admin)
func (h *CourtHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateCourtRequest
	if !decodeBody(w, r, &req) {
		return
	}

	court, err := h.service.CreateCourt(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create court")
		return
	}

	utils.ResponseCreated(w, "Court created", court)
}

// UpdateCourt handles PUT /api/courts/{id} (court owner or admin)
func (h *CourtHandler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateCourtRequest
	if !decodeBody(w, r, &req) {
		return
	}

	court, err := h.service.UpdateCourt(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update court")
		return
	}

	utils.ResponseSuccess(w, "Court updated", court)
}

// UpdateCourtStatus handles PATCH /api/courts/{id}/status (court owner or admin)
func (h *CourtHandler) UpdateCourtStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateCourtStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	court, err := h.service.UpdateCourtStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update court status")
		return
	}

	utils.ResponseSuccess(w, "Court status updated", court)
}

// DeleteCourt handles DELETE /api/courts/{id} (court owner or admin)
func (h *CourtHandler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCourt(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete court")
		return
	}

	utils.ResponseSuccess(w, "Court deleted", nil)
}

// ListOwnerCourts handles GET /api/owner/courts (owner or admin)
func (h *CourtHandler) ListOwnerCourts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	courts, err := h.service.ListOwnerCourts(r.Context(), actor)
	if err != nil {
		writeServiceError(w, h.log, err, "list owner courts")
		return
	}

	utils.ResponseSuccess(w, "success", courts)
}
