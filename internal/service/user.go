package service

import (
	"context"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, user *domain.User) error {
	return s.userRepo.UpdateProfile(ctx, user)
}
