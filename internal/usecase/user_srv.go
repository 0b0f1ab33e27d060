package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"court-booking/internal/data/repository"
	"court-booking/internal/domain"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ListUsers(ctx context.Context, actor domain.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	user.FullName = strings.TrimSpace(req.FullName)

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != "" && (user.Phone == nil || *user.Phone != phone) {
			holder, err := us.userRepo.FindByPhone(ctx, phone)
			if err != nil {
				return nil, fmt.Errorf("check phone: %w", err)
			}
			if holder != nil && holder.ID != user.ID {
				return nil, domain.ErrPhoneTaken
			}
			user.Phone = &phone
		}
	}

	user.UpdatedAt = time.Now()
	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("Profile updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) ListUsers(ctx context.Context, actor domain.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !domain.CanListUsers(actor) {
		return nil, fmt.Errorf("%w: admin access required", domain.ErrForbidden)
	}

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.CurrentPage(), req.Limit(), total), nil
}
