package usecase

import (
	"time"

	"court-booking/internal/data/repository"
	"court-booking/internal/domain"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Court   CourtService
	Booking BookingService
}

// NewService builds every service over repo. loc defines the calendar day
// used by booking validation and the completion sweep.
func NewService(
	repo *repository.Repository,
	config *utils.Config,
	events EventPublisher,
	loc *time.Location,
	log *zap.Logger,
) *Service {
	validator := domain.NewValidator(domain.SystemClock, loc)

	return &Service{
		Auth:    NewAuthService(repo.User, repo.Session, config.Session, log),
		User:    NewUserService(repo.User, log),
		Court:   NewCourtService(repo.Court, log),
		Booking: NewBookingService(repo.Booking, repo.Court, validator, events, log),
	}
}
