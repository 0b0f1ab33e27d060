package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/domain"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, actor domain.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, actor domain.Actor, bookingID string) (*response.BookingResponse, error)

	ListUserBookings(ctx context.Context, actor domain.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListOwnerBookings(ctx context.Context, actor domain.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListCourtBookings(ctx context.Context, actor domain.Actor, courtID string) ([]response.BookingResponse, error)
	ListAllBookings(ctx context.Context, actor domain.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	UpdateBookingStatus(ctx context.Context, actor domain.Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, actor domain.Actor, bookingID string) (*response.BookingResponse, error)

	// CompleteFinishedBookings completes confirmed bookings whose end time has passed.
	CompleteFinishedBookings(ctx context.Context) (int64, error)
}

type bookingService struct {
	bookings  repository.BookingRepository
	courts    repository.CourtRepository
	validator *domain.Validator
	locks     *domain.SlotLocks
	events    EventPublisher
	log       *zap.Logger
}

func NewBookingService(
	bookings repository.BookingRepository,
	courts repository.CourtRepository,
	validator *domain.Validator,
	events EventPublisher,
	log *zap.Logger,
) BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	return &bookingService{
		bookings:  bookings,
		courts:    courts,
		validator: validator,
		locks:     domain.NewSlotLocks(),
		events:    events,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor domain.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid court ID", domain.ErrValidation)
	}

	court, err := s.courts.FindByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("load court: %w", err)
	}

	valid, err := s.validator.Validate(domain.BookingInput{
		CourtID:     courtID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CourtNumber: req.CourtNumber,
		Notes:       req.Notes,
	}, court)
	if err != nil {
		s.log.Warn("Booking request rejected",
			zap.Error(err),
			zap.String("court_id", req.CourtID),
			zap.String("user_id", actor.ID.String()))
		return nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      actor.ID,
		CourtID:     court.ID,
		BookingDate: valid.Date,
		StartTime:   valid.Window.Start.String(),
		EndTime:     valid.Window.End.String(),
		CourtNumber: valid.CourtNumber,
		TotalPrice:  domain.TotalPrice(court.PricePerHour, valid.Window),
		Notes:       valid.Notes,
		Status:      entity.BookingStatusPending,
	}

	unlock := s.locks.Lock(valid.Slot())
	err = s.bookings.CreateIfAvailable(ctx, booking)
	unlock()
	if err != nil {
		return nil, err
	}

	detail, err := s.mustFind(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot", valid.Slot().String()),
		zap.String("window", valid.Window.String()),
		zap.String("total_price", booking.TotalPrice.StringFixed(2)))

	publish(ctx, s.events, s.log, EventBookingCreated, newBookingEvent(detail, "", actor))

	resp := response.BookingToResponse(detail)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, actor domain.Actor, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !domain.CanView(domain.PartiesOf(booking), actor) {
		return nil, fmt.Errorf("%w: cannot view this booking", domain.ErrForbidden)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, actor domain.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.bookings.ListByUser(ctx, actor.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.bookings.CountByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.CurrentPage(), req.Limit(), total), nil
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, actor domain.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if !domain.CanOwnCourts(actor) {
		return nil, fmt.Errorf("%w: only court owners can list their court bookings", domain.ErrForbidden)
	}

	bookings, err := s.bookings.ListByOwner(ctx, actor.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.bookings.CountByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.CurrentPage(), req.Limit(), total), nil
}

func (s *bookingService) ListCourtBookings(ctx context.Context, actor domain.Actor, courtID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(courtID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid court ID", domain.ErrValidation)
	}

	court, err := s.courts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load court: %w", err)
	}
	if court == nil {
		return nil, domain.ErrCourtNotFound
	}

	if !domain.CanManageCourt(court.OwnerID, actor) {
		return nil, fmt.Errorf("%w: not the owner of this court", domain.ErrForbidden)
	}

	bookings, err := s.bookings.ListByCourt(ctx, court.ID)
	if err != nil {
		return nil, err
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) ListAllBookings(ctx context.Context, actor domain.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if !domain.CanListAllBookings(actor) {
		return nil, fmt.Errorf("%w: admin access required", domain.ErrForbidden)
	}

	bookings, err := s.bookings.ListAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.bookings.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.CurrentPage(), req.Limit(), total), nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, actor domain.Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	target, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, err
	}

	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !domain.CanUpdateStatus(domain.PartiesOf(booking), actor) {
		s.log.Warn("Booking status update denied",
			zap.String("booking_id", booking.ID.String()),
			zap.String("actor_id", actor.ID.String()))
		return nil, fmt.Errorf("%w: only the court owner or an admin can change booking status", domain.ErrForbidden)
	}

	event, err := domain.EventFor(target)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, actor, booking, event)
}

func (s *bookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !domain.CanCancel(domain.PartiesOf(booking), actor) {
		return nil, fmt.Errorf("%w: cannot cancel this booking", domain.ErrForbidden)
	}

	return s.transition(ctx, actor, booking, domain.EventCancel)
}

func (s *bookingService) CompleteFinishedBookings(ctx context.Context) (int64, error) {
	return s.bookings.CompleteFinished(ctx, s.validator.Now())
}

// statusWriteAttempts bounds how often a transition is re-decided after
// losing a race with another status writer.
const statusWriteAttempts = 3

// transition applies event to booking and persists the result. The write only
// lands if the stored status still matches the one the decision was based on;
// otherwise the booking is re-read and the event applied again.
func (s *bookingService) transition(ctx context.Context, actor domain.Actor, booking *entity.BookingDetail, event domain.Event) (*response.BookingResponse, error) {
	for attempt := 1; ; attempt++ {
		resp, err := s.applyTransition(ctx, actor, booking, event)
		if !errors.Is(err, domain.ErrStatusChanged) || attempt == statusWriteAttempts {
			return resp, err
		}

		s.log.Info("Retrying booking status change",
			zap.String("booking_id", booking.ID.String()),
			zap.String("event", string(event)),
			zap.Int("attempt", attempt))

		if booking, err = s.mustFind(ctx, booking.ID); err != nil {
			return nil, err
		}
	}
}

// applyTransition performs one read-decide-write round. Bringing a cancelled
// booking back re-checks its slot, since the window may have been taken in
// the meantime.
func (s *bookingService) applyTransition(ctx context.Context, actor domain.Actor, booking *entity.BookingDetail, event domain.Event) (*response.BookingResponse, error) {
	from := booking.Status
	to, err := domain.Transition(from, event)
	if err != nil {
		return nil, err
	}

	if to == from {
		resp := response.BookingToResponse(booking)
		return &resp, nil
	}

	if !domain.Occupies(from) && domain.Occupies(to) {
		slot := domain.NewSlotKey(booking.CourtID, booking.BookingDate, booking.CourtNumber)
		unlock := s.locks.Lock(slot)
		err = s.bookings.ReactivateIfAvailable(ctx, &booking.Booking, to)
		unlock()
	} else {
		err = s.bookings.UpdateStatus(ctx, booking.ID, from, to)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.mustFind(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor_id", actor.ID.String()))

	key := EventBookingStatusChanged
	if to == entity.BookingStatusCancelled {
		key = EventBookingCancelled
	}
	publish(ctx, s.events, s.log, key, newBookingEvent(updated, from, actor))

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) find(ctx context.Context, bookingID string) (*entity.BookingDetail, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID", domain.ErrValidation)
	}
	return s.mustFind(ctx, id)
}

func (s *bookingService) mustFind(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}
