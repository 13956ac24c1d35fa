package service

import (
	"context"

	"go.uber.org/zap"

	"soulsync/internal/model"
	"soulsync/internal/repository"
)

// UserService handles core user operations
type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ListUsers returns every account
func (s *UserService) ListUsers(ctx context.Context) (*model.UserListResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &model.UserListResponse{
		Users: users,
		Total: len(users),
	}, nil
}
