package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/domain"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourtService interface {
	CreateCourt(ctx context.Context, actor domain.Actor, req *request.CreateCourtRequest) (*response.CourtResponse, error)
	UpdateCourt(ctx context.Context, actor domain.Actor, courtID string, req *request.UpdateCourtRequest) (*response.CourtResponse, error)
	UpdateCourtStatus(ctx context.Context, actor domain.Actor, courtID string, req *request.UpdateCourtStatusRequest) (*response.CourtResponse, error)
	DeleteCourt(ctx context.Context, actor domain.Actor, courtID string) error
	GetCourt(ctx context.Context, courtID string) (*response.CourtResponse, error)
	ListCourts(ctx context.Context, req *request.CourtListRequest) (*response.PaginatedResponse[response.CourtResponse], error)
	ListOwnerCourts(ctx context.Context, actor domain.Actor) ([]response.CourtResponse, error)
}

type courtService struct {
	courtRepo repository.CourtRepository
	log       *zap.Logger
}

func NewCourtService(courtRepo repository.CourtRepository, log *zap.Logger) CourtService {
	return &courtService{
		courtRepo: courtRepo,
		log:       log.With(zap.String("service", "court")),
	}
}

func (s *courtService) CreateCourt(ctx context.Context, actor domain.Actor, req *request.CreateCourtRequest) (*response.CourtResponse, error) {
	if !domain.CanOwnCourts(actor) {
		return nil, fmt.Errorf("%w: only court owners can register courts", domain.ErrForbidden)
	}

	hours, err := domain.ValidateOpeningHours(req.OpenTime, req.CloseTime)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	court := &entity.Court{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID: actor.ID,
		Status:  entity.CourtStatusActive,
	}
	applyCourtFields(court, req, hours)

	if err := s.courtRepo.Create(ctx, court); err != nil {
		return nil, err
	}

	s.log.Info("Court created",
		zap.String("court_id", court.ID.String()),
		zap.String("owner_id", actor.ID.String()))

	resp := response.CourtToResponse(court)
	return &resp, nil
}

// UpdateCourt replaces the court's editable fields. Existing bookings keep
// their hours and price.
func (s *courtService) UpdateCourt(ctx context.Context, actor domain.Actor, courtID string, req *request.UpdateCourtRequest) (*response.CourtResponse, error) {
	court, err := s.findManaged(ctx, actor, courtID)
	if err != nil {
		return nil, err
	}

	hours, err := domain.ValidateOpeningHours(req.OpenTime, req.CloseTime)
	if err != nil {
		return nil, err
	}

	applyCourtFields(court, &req.CreateCourtRequest, hours)
	court.UpdatedAt = time.Now()

	if err := s.courtRepo.Update(ctx, court); err != nil {
		return nil, err
	}

	s.log.Info("Court updated", zap.String("court_id", court.ID.String()))

	resp := response.CourtToResponse(court)
	return &resp, nil
}

func (s *courtService) UpdateCourtStatus(ctx context.Context, actor domain.Actor, courtID string, req *request.UpdateCourtStatusRequest) (*response.CourtResponse, error) {
	status, err := domain.ParseCourtStatus(req.Status)
	if err != nil {
		return nil, err
	}

	court, err := s.findManaged(ctx, actor, courtID)
	if err != nil {
		return nil, err
	}

	if err := s.courtRepo.UpdateStatus(ctx, court.ID, status); err != nil {
		return nil, err
	}
	court.Status = status
	court.UpdatedAt = time.Now()

	s.log.Info("Court status updated",
		zap.String("court_id", court.ID.String()),
		zap.String("status", string(status)))

	resp := response.CourtToResponse(court)
	return &resp, nil
}

// DeleteCourt removes a court that has never been booked. A court with
// booking history is kept so those bookings stay readable; owners retire it
// through its status instead.
func (s *courtService) DeleteCourt(ctx context.Context, actor domain.Actor, courtID string) error {
	court, err := s.findManaged(ctx, actor, courtID)
	if err != nil {
		return err
	}

	if err := s.courtRepo.Delete(ctx, court.ID); err != nil {
		return err
	}

	s.log.Info("Court deleted",
		zap.String("court_id", court.ID.String()),
		zap.String("actor_id", actor.ID.String()))

	return nil
}

func (s *courtService) GetCourt(ctx context.Context, courtID string) (*response.CourtResponse, error) {
	court, err := s.find(ctx, courtID)
	if err != nil {
		return nil, err
	}

	resp := response.CourtToResponse(court)
	return &resp, nil
}

// ListCourts lists active courts only.
func (s *courtService) ListCourts(ctx context.Context, req *request.CourtListRequest) (*response.PaginatedResponse[response.CourtResponse], error) {
	active := entity.CourtStatusActive
	filter := repository.CourtFilter{
		Status:   &active,
		Name:     req.Name,
		Address:  req.Address,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}

	courts, err := s.courtRepo.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.courtRepo.CountAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.CourtsToResponse(courts), req.CurrentPage(), req.Limit(), total), nil
}

func (s *courtService) ListOwnerCourts(ctx context.Context, actor domain.Actor) ([]response.CourtResponse, error) {
	if !domain.CanOwnCourts(actor) {
		return nil, fmt.Errorf("%w: only court owners have courts", domain.ErrForbidden)
	}

	courts, err := s.courtRepo.FindByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return response.CourtsToResponse(courts), nil
}

// ==================== HELPER METHODS ====================

func (s *courtService) find(ctx context.Context, courtID string) (*entity.Court, error) {
	id, err := uuid.Parse(courtID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid court ID", domain.ErrValidation)
	}

	court, err := s.courtRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if court == nil {
		return nil, domain.ErrCourtNotFound
	}

	return court, nil
}

func (s *courtService) findManaged(ctx context.Context, actor domain.Actor, courtID string) (*entity.Court, error) {
	court, err := s.find(ctx, courtID)
	if err != nil {
		return nil, err
	}

	if !domain.CanManageCourt(court.OwnerID, actor) {
		s.log.Warn("Court management denied",
			zap.String("court_id", court.ID.String()),
			zap.String("actor_id", actor.ID.String()))
		return nil, fmt.Errorf("%w: not the owner of this court", domain.ErrForbidden)
	}

	return court, nil
}

func applyCourtFields(court *entity.Court, req *request.CreateCourtRequest, hours domain.Window) {
	court.Name = strings.TrimSpace(req.Name)
	court.Address = strings.TrimSpace(req.Address)
	court.Description = req.Description
	court.PricePerHour = req.PricePerHour.Round(2)
	court.NumberOfCourts = req.NumberOfCourts
	court.Facilities = req.Facilities
	court.Images = req.Images
	court.OpenTime = hours.Start.String()
	court.CloseTime = hours.End.String()
}
